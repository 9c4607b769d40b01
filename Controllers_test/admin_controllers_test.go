package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewReportFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	cleanerToken := registerAndLogin(t, r, "maria@example.com", "secreto123", "María")
	adminToken := registerAndLogin(t, r, "admin@example.com", "secreto123", "Jane")

	w := doJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location":    testLocation,
		"report_text": "grifo roto",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	publicID := decodeResponse(t, w)["data"].(map[string]interface{})["id"].(string)

	// The report shows up pending
	w = doJSON(t, r, "GET", "/admin/reports", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	reports := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, reports, 1)
	first := reports[0].(map[string]interface{})
	assert.Equal(t, publicID, first["id"])
	assert.Equal(t, false, first["reviewed"])

	// Review it
	w = doJSON(t, r, "POST", "/admin/reports/"+publicID+"/review", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	reviewed := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, reviewed["reviewed"])
	assert.Equal(t, "Jane", reviewed["reviewed_by"])
	assert.NotNil(t, reviewed["reviewed_at"])

	// Still listed, now with its reviewer
	w = doJSON(t, r, "GET", "/admin/reports", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	reports = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, reports, 1)
	first = reports[0].(map[string]interface{})
	assert.Equal(t, true, first["reviewed"])
	assert.Equal(t, "Jane", first["reviewed_by"])

	// A second review answers 409 and keeps the first stamp
	w = doJSON(t, r, "POST", "/admin/reports/"+publicID+"/review", adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewUnknownReport(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	adminToken := registerAndLogin(t, r, "admin@example.com", "secreto123", "Jane")

	w := doJSON(t, r, "POST", "/admin/reports/no-such-id/review", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	cleanerToken := registerAndLogin(t, r, "maria@example.com", "secreto123", "María")
	adminToken := registerAndLogin(t, r, "admin@example.com", "secreto123", "Jane")

	w := doJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location": testLocation,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location":    testLocation,
		"report_text": "sin jabón",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_limpiezas"])
	assert.Equal(t, float64(1), stats["total_reportes"])

	board := data["board"].([]interface{})
	assert.Len(t, board, 6)
	for _, raw := range board {
		row := raw.(map[string]interface{})
		if row["location"] == testLocation {
			assert.Equal(t, "fresh", row["tier"])
			assert.Contains(t, row["status_text"], "Última limpieza:")
		} else {
			assert.Equal(t, "unknown", row["tier"])
			assert.Equal(t, "Sin registros", row["status_text"])
		}
	}
}

func TestGlobalHistoryWithLocationFilter(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	cleanerToken := registerAndLogin(t, r, "maria@example.com", "secreto123", "María")
	adminToken := registerAndLogin(t, r, "admin@example.com", "secreto123", "Jane")

	w := doJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location": testLocation,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location": "Piso 1 - Baño Mujeres",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/admin/cleaning-logs", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	logs := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, logs, 2)

	w = doJSON(t, r, "GET", "/admin/cleaning-logs?location=Piso+1+-+Ba%C3%B1o+Mujeres", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	logs = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, logs, 1)
}

func TestExportDownload(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	cleanerToken := registerAndLogin(t, r, "maria@example.com", "secreto123", "María")
	adminToken := registerAndLogin(t, r, "admin@example.com", "secreto123", "Jane")

	w := doJSON(t, r, "POST", "/cleaning-logs", cleanerToken, map[string]string{
		"location":    testLocation,
		"report_text": "espejo roto",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/admin/reports/export", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "registros_limpieza_")
	assert.NotZero(t, w.Body.Len())
}

func TestAdminEndpointsForbiddenForCleaner(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouterForTest(db)

	token := registerAndLogin(t, r, "maria@example.com", "secreto123", "María")

	for _, path := range []string{"/admin/dashboard", "/admin/reports", "/admin/cleaning-logs", "/admin/reports/export"} {
		w := doJSON(t, r, "GET", path, token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}
