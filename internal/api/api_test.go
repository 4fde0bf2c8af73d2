package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/database"
	"github.com/macrolog/backend/internal/models"
)

// setupRouter builds a full API over an in-memory store. foodAPIBaseURL may
// point at a stub server for product proxy tests; the default public URL is
// never hit because those tests pass their own.
func setupRouter(t *testing.T, foodAPIBaseURL string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router := gin.New()
	SetupAPI(router, db, foodAPIBaseURL)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func seedFoodRow(t *testing.T, db *gorm.DB, name string, calories float64) *models.SavedFood {
	t.Helper()
	food := models.SavedFood{
		Name:               name,
		CaloriesPer100g:    calories,
		ProteinPer100g:     10,
		DefaultServingSize: 100,
	}
	require.NoError(t, db.Create(&food).Error)
	return &food
}
