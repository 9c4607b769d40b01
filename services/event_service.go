package services

import (
	"errors"
	"strings"
	"time"

	"github.com/TyCGroup/serviciosgenerales/config"
	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 50
	DefaultReportLimit  = 10
)

// EventService owns the cleaning-record lifecycle: validated creation,
// the report-review transition, and the read projections the screens
// are built from. Records are append-only; nothing here ever deletes
// one or touches its creation fields.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// Create logs one cleaning. An empty report text logs a plain record;
// a non-empty one attaches the report and leaves it pending review.
// The actor comes from the authenticated session, never from input.
func (s *EventService) Create(location, userEmail, userName, reportText string) (*models.CleaningLog, error) {
	if userEmail == "" {
		return nil, utils.NewValidationError("usuario no identificado")
	}
	if !config.IsValidLocation(location) {
		return nil, utils.NewValidationError("ubicación desconocida: %s", location)
	}

	entry := models.CleaningLog{
		PublicID:  uuid.NewString(),
		Location:  location,
		Fecha:     time.Now(),
		UserEmail: userEmail,
		UserName:  userName,
	}

	reportText = strings.TrimSpace(reportText)
	if reportText != "" {
		entry.HasReport = true
		entry.ReportText = &reportText
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByPublicID fetches a single record.
func (s *EventService) GetByPublicID(publicID string) (*models.CleaningLog, error) {
	var entry models.CleaningLog
	err := s.db.Where("public_id = ?", publicID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &utils.NotFoundError{Resource: "registro"}
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarkReviewed stamps a pending report as reviewed. The transition is
// a single conditional update so two admins racing on the same report
// cannot both stamp it: the precondition (has a report, not yet
// reviewed) is checked by the store, not by a read before the write.
func (s *EventService) MarkReviewed(publicID, reviewerName string) (*models.CleaningLog, error) {
	if reviewerName == "" {
		return nil, utils.NewValidationError("revisor no identificado")
	}

	now := time.Now()
	res := s.db.Model(&models.CleaningLog{}).
		Where("public_id = ? AND has_report = ? AND reviewed = ?", publicID, true, false).
		Updates(map[string]interface{}{
			"reviewed":    true,
			"reviewed_by": reviewerName,
			"reviewed_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Lost the race, already reviewed, or no such record at all.
		// A follow-up read tells which.
		entry, err := s.GetByPublicID(publicID)
		if err != nil {
			return nil, err
		}
		if !entry.HasReport {
			return nil, &utils.PreconditionFailedError{Message: "el registro no tiene reporte"}
		}
		return nil, &utils.PreconditionFailedError{Message: "el reporte ya fue revisado, actualiza la página"}
	}

	return s.GetByPublicID(publicID)
}

// PersonalHistory returns one cleaner's records, newest first.
func (s *EventService) PersonalHistory(userEmail string, limit int) ([]models.CleaningLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var logs []models.CleaningLog
	err := s.db.Where("user_email = ?", userEmail).
		Order("fecha DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// GlobalHistory returns records across all cleaners, newest first,
// optionally narrowed to one location.
func (s *EventService) GlobalHistory(location string, limit int) ([]models.CleaningLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	q := s.db.Order("fecha DESC, id DESC").Limit(limit)
	if location != "" {
		q = q.Where("location = ?", location)
	}
	var logs []models.CleaningLog
	err := q.Find(&logs).Error
	return logs, err
}

// PendingReports returns the latest records carrying a report.
// Reviewed ones stay in the result; the dashboard shows them with
// their reviewer rather than hiding them.
func (s *EventService) PendingReports(limit int) ([]models.CleaningLog, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	var logs []models.CleaningLog
	err := s.db.Where("has_report = ?", true).
		Order("fecha DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// LocationStatus is one row of the status board.
type LocationStatus struct {
	Location   string              `json:"location"`
	Tier       Tier                `json:"tier"`
	StatusText string              `json:"status_text"`
	LastRecord *models.CleaningLog `json:"last_record"`
}

// LocationBoard reports, for every configured location, the most
// recent record and its freshness tier as of now.
func (s *EventService) LocationBoard(now time.Time) ([]LocationStatus, error) {
	board := make([]LocationStatus, 0, len(config.Locations()))

	for _, location := range config.Locations() {
		var last models.CleaningLog
		err := s.db.Where("location = ?", location).
			Order("fecha DESC, id DESC").
			First(&last).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			board = append(board, LocationStatus{
				Location:   location,
				Tier:       TierUnknown,
				StatusText: "Sin registros",
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		entry := last
		board = append(board, LocationStatus{
			Location:   location,
			Tier:       Classify(entry.Fecha, now),
			StatusText: "Última limpieza: " + utils.FormatDate(entry.Fecha) + " - " + utils.FormatTime(entry.Fecha),
			LastRecord: &entry,
		})
	}

	return board, nil
}

// DailyStats counts the records logged on one day.
type DailyStats struct {
	TotalLimpiezas int64 `json:"total_limpiezas"`
	TotalReportes  int64 `json:"total_reportes"`
}

// StatsForDay counts all records since the local midnight of day,
// and how many of those carry a report (reviewed or not).
func (s *EventService) StatsForDay(day time.Time) (DailyStats, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var stats DailyStats
	if err := s.db.Model(&models.CleaningLog{}).
		Where("fecha >= ?", start).
		Count(&stats.TotalLimpiezas).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&models.CleaningLog{}).
		Where("fecha >= ? AND has_report = ?", start, true).
		Count(&stats.TotalReportes).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
