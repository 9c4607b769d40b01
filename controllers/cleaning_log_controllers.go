package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TyCGroup/serviciosgenerales/config"
	"github.com/TyCGroup/serviciosgenerales/live"
	"github.com/TyCGroup/serviciosgenerales/services"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CleaningLogController struct {
	DB     *gorm.DB
	events *services.EventService
}

func NewCleaningLogController(db *gorm.DB) *CleaningLogController {
	return &CleaningLogController{
		DB:     db,
		events: services.NewEventService(db),
	}
}

// GetLocations returns the configured checkpoint list (the QR targets
// and the admin filter dropdown).
func (clc *CleaningLogController) GetLocations(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Ubicaciones", config.Locations())
}

// CreateCleaningLog logs one cleaning after a scan. The actor is the
// authenticated session; report_text, when present, attaches a
// problem report pending review.
func (clc *CleaningLogController) CreateCleaningLog(c *gin.Context) {
	type reqBody struct {
		Location   string `json:"location" binding:"required"`
		ReportText string `json:"report_text"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	email := c.GetString("email")
	name := c.GetString("name")

	entry, err := clc.events.Create(body.Location, email, name, body.ReportText)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cleaning logged at %q by %s (report=%t)", entry.Location, entry.UserEmail, entry.HasReport)
	live.BroadcastRecordCreated(*entry)

	utils.RespondJSON(c, http.StatusCreated, "Registro guardado", entry)
}

// GetPersonalHistory lists the session's own records, newest first.
func (clc *CleaningLogController) GetPersonalHistory(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("usuario no identificado"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := clc.events.PersonalHistory(email, limit)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Historial", logs)
}

// GetCleaningLogByID returns one record.
func (clc *CleaningLogController) GetCleaningLogByID(c *gin.Context) {
	entry, err := clc.events.GetByPublicID(c.Param("public_id"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Detalle del registro", entry)
}
