package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/macrolog/backend/internal/database"
)

// Opening the database already migrates it; this command exists so
// deployments can run migrations ahead of starting the API and inspect the
// resulting schema generation.
func main() {
	status := flag.Bool("status", false, "Print applied schema versions and exit")
	flag.Parse()

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "macrolog.db"
	}

	db, err := database.OpenPath(path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if *status {
		applied, err := database.AppliedMigrations(db.DB)
		if err != nil {
			log.Fatalf("failed to read migration status: %v", err)
		}
		for _, m := range applied {
			fmt.Printf("%d\t%s\t%s\n", m.Version, m.AppliedAt.Format("2006-01-02 15:04:05"), m.Name)
		}
		return
	}

	log.Printf("database at %s is at schema version %d", path, database.LatestVersion)
}
