package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/TyCGroup/serviciosgenerales/live"
	"github.com/TyCGroup/serviciosgenerales/services"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB      *gorm.DB
	events  *services.EventService
	exports *services.ExportService
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		DB:      db,
		events:  services.NewEventService(db),
		exports: services.NewExportService(db),
	}
}

// GetGlobalHistory lists records across all cleaners, optionally
// narrowed to one location via ?location=.
func (ac *AdminController) GetGlobalHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := ac.events.GlobalHistory(c.Query("location"), limit)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Historial general", logs)
}

// GetPendingReports returns the report queue. Reviewed entries stay
// in it so the screen can show who closed them.
func (ac *AdminController) GetPendingReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := ac.events.PendingReports(limit)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reportes", logs)
}

// ReviewReport marks one report reviewed, stamped with the admin's
// display name. A report can only be reviewed once; losing that race
// answers 409.
func (ac *AdminController) ReviewReport(c *gin.Context) {
	reviewer := c.GetString("name")
	if reviewer == "" {
		reviewer = c.GetString("email")
	}

	entry, err := ac.events.MarkReviewed(c.Param("public_id"), reviewer)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Report %s reviewed by %s", entry.PublicID, reviewer)
	live.BroadcastReportReviewed(*entry)

	utils.RespondJSON(c, http.StatusOK, "Reporte revisado", entry)
}

// GetDashboard assembles the admin start screen: today's counters
// plus the per-location status board, classified against the clock of
// this request.
func (ac *AdminController) GetDashboard(c *gin.Context) {
	now := time.Now()

	stats, err := ac.events.StatsForDay(now)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	board, err := ac.events.LocationBoard(now)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	payload := gin.H{
		"stats": stats,
		"board": board,
	}
	live.BroadcastDashboardUpdate(payload)

	utils.RespondJSON(c, http.StatusOK, "Dashboard", payload)
}

// ExportData streams the full history as a date-stamped xlsx file.
func (ac *AdminController) ExportData(c *gin.Context) {
	filename, content, err := ac.exports.GenerateWorkbook(time.Now())
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		content.Bytes())
}
