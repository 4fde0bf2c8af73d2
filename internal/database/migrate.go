package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
)

// LatestVersion is the newest schema generation. Migrations are forward-only:
// each generation adds collections and indexes, never removes them.
const LatestVersion = 4

// schemaVersion records one applied migration step.
type schemaVersion struct {
	Version   int    `gorm:"primarykey"`
	Name      string `gorm:"size:255;not null"`
	AppliedAt time.Time
}

func (schemaVersion) TableName() string { return "schema_versions" }

type migration struct {
	version int
	name    string
	apply   func(tx *gorm.DB) error
}

// migrations holds every schema generation in order. A store created at an
// older generation runs each later step exactly once on open.
var migrations = []migration{
	{
		version: 1,
		name:    "food entries and user goals",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.FoodEntry{}, &models.UserGoals{})
		},
	},
	{
		version: 2,
		name:    "saved food catalog",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&models.SavedFood{})
		},
	},
	{
		version: 3,
		name:    "meal and day templates",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(
				&models.MealTemplate{},
				&models.MealTemplateItem{},
				&models.DayTemplate{},
				&models.DayTemplateMeal{},
			)
		},
	},
	{
		version: 4,
		name:    "store pricing with backfill",
		apply: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&models.StorePricing{}); err != nil {
				return err
			}
			return backfillStorePricing(tx)
		},
	},
}

// Migrate brings the schema from the recorded version up to LatestVersion.
// All pending steps run inside one transaction so a failure partway leaves
// the store at its previous generation.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	var current int
	if err := db.Model(&schemaVersion{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&current).Error; err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if current >= LatestVersion {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range migrations {
			if m.version <= current {
				continue
			}
			if err := m.apply(tx); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
			}
			record := schemaVersion{Version: m.version, Name: m.name, AppliedAt: time.Now()}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.version, err)
			}
			log.Printf("Applied schema migration %d: %s", m.version, m.name)
		}
		return nil
	})
}

// AppliedMigration describes one recorded schema step, for status reporting.
type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
}

// AppliedMigrations lists the recorded schema steps in version order.
func AppliedMigrations(db *gorm.DB) ([]AppliedMigration, error) {
	var rows []schemaVersion
	if err := db.Order("version ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read schema versions: %w", err)
	}
	applied := make([]AppliedMigration, 0, len(rows))
	for _, row := range rows {
		applied = append(applied, AppliedMigration(row))
	}
	return applied, nil
}

// backfillStorePricing moves pricing previously embedded on saved foods into
// the store_pricing table. Foods without complete pricing data are left
// alone; the migration never fails because some rows lack it.
func backfillStorePricing(tx *gorm.DB) error {
	var foods []models.SavedFood
	if err := tx.
		Where("store IS NOT NULL AND price IS NOT NULL AND package_size IS NOT NULL").
		Find(&foods).Error; err != nil {
		return err
	}

	var pricing []models.StorePricing
	for _, food := range foods {
		if *food.Store == "" || *food.Price == 0 || *food.PackageSize == 0 {
			continue
		}
		unit := "g"
		if food.PackageUnit != nil && *food.PackageUnit != "" {
			unit = *food.PackageUnit
		}
		pricing = append(pricing, models.StorePricing{
			SavedFoodID: food.ID,
			Store:       *food.Store,
			Price:       *food.Price,
			PackageSize: *food.PackageSize,
			PackageUnit: unit,
			PricePerKg:  models.PricePerKg(*food.Price, *food.PackageSize, unit),
			LastUpdated: time.Now(),
		})
	}

	if len(pricing) == 0 {
		return nil
	}
	return tx.Create(&pricing).Error
}
