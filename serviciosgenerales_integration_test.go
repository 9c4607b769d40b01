package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/TyCGroup/serviciosgenerales/router"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 1. A cleaner registers and logs in
// 2. Scans a location and logs a cleaning with a problem report
// 3. An admin sees it on the dashboard and in the report queue
// 4. The admin reviews the report; a second review is refused
// 5. The admin downloads the export
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	cleanerToken := registerAndLoginIntegration(t, r, "maria@example.com", "María")
	adminToken := registerAndLoginIntegration(t, r, "admin@example.com", "Jane")

	// Log a cleaning with a report
	w := performJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location":    "Piso 2 - Baño Mujeres",
		"report_text": "fuga en el lavabo",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})
	publicID := created["id"].(string)

	// Dashboard counts it and shows the location fresh
	w = performJSON(t, r, "GET", "/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	dash := decodeBody(t, w)["data"].(map[string]interface{})
	stats := dash["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_limpiezas"])
	assert.Equal(t, float64(1), stats["total_reportes"])

	// Review the report
	w = performJSON(t, r, "POST", "/admin/reports/"+publicID+"/review", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	reviewed := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, reviewed["reviewed"])
	assert.Equal(t, "Jane", reviewed["reviewed_by"])

	// Reviewing twice is refused
	w = performJSON(t, r, "POST", "/admin/reports/"+publicID+"/review", adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Export carries the record
	w = performJSON(t, r, "GET", "/admin/reports/export", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CleaningLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func registerAndLoginIntegration(t *testing.T, r *gin.Engine, email, name string) string {
	t.Helper()

	w := performJSON(t, r, "POST", "/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secreto123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(t, r, "POST", "/login", "", map[string]string{
		"email":    email,
		"password": "secreto123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	return data["token"].(string)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func performJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body := bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
