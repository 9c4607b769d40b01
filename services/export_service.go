package services

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/TyCGroup/serviciosgenerales/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// exportHeader are the spreadsheet columns, one row per record,
// newest first.
var exportHeader = []string{
	"Fecha",
	"Hora",
	"Ubicación",
	"Usuario",
	"Reporte",
	"Descripción",
	"Estado",
	"Revisado por",
}

// ExportService builds the xlsx download of the full record history.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// ExportRow is one flattened spreadsheet row.
type ExportRow struct {
	Fecha       string
	Hora        string
	Location    string
	UserDisplay string
	HasReport   string
	ReportText  string
	Status      string
	ReviewedBy  string
}

// BuildRows flattens every record into export rows. The record set
// and the account-name map are independent reads and are fetched
// concurrently.
func (s *ExportService) BuildRows() ([]ExportRow, error) {
	var (
		wg       sync.WaitGroup
		logs     []models.CleaningLog
		users    []models.User
		logsErr  error
		usersErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		logsErr = s.db.Order("fecha DESC, id DESC").Find(&logs).Error
	}()
	go func() {
		defer wg.Done()
		usersErr = s.db.Find(&users).Error
	}()
	wg.Wait()

	if logsErr != nil {
		return nil, logsErr
	}
	if usersErr != nil {
		return nil, usersErr
	}

	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].Email] = users[i].DisplayName()
	}

	rows := make([]ExportRow, 0, len(logs))
	for _, entry := range logs {
		row := ExportRow{
			Fecha:       entry.Fecha.Format("02/01/2006"),
			Hora:        entry.Fecha.Format("15:04"),
			Location:    entry.Location,
			UserDisplay: displayNameFor(entry, names),
			HasReport:   "no",
			Status:      "Pendiente",
		}
		if entry.HasReport {
			row.HasReport = "sí"
			if entry.ReportText != nil {
				row.ReportText = *entry.ReportText
			}
		}
		if entry.Reviewed {
			row.Status = "Revisado"
			if entry.ReviewedBy != nil {
				row.ReviewedBy = *entry.ReviewedBy
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GenerateWorkbook renders the rows into an xlsx file and names it
// with the export date.
func (s *ExportService) GenerateWorkbook(now time.Time) (filename string, content *bytes.Buffer, err error) {
	rows, err := s.BuildRows()
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Registros"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return "", nil, err
		}
	}

	widths := []float64{12, 8, 30, 20, 10, 40, 12, 20}
	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return "", nil, err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return "", nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Fecha, row.Hora, row.Location, row.UserDisplay,
			row.HasReport, row.ReportText, row.Status, row.ReviewedBy,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return "", nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return "", nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	filename = fmt.Sprintf("registros_limpieza_%s.xlsx", now.Format("2006-01-02"))
	return filename, buf, nil
}

// displayNameFor prefers the account's current display name and falls
// back to what the record itself carries.
func displayNameFor(entry models.CleaningLog, names map[string]string) string {
	if name, ok := names[entry.UserEmail]; ok && name != "" {
		return name
	}
	if entry.UserName != "" {
		return entry.UserName
	}
	if at := strings.Index(entry.UserEmail, "@"); at > 0 {
		return entry.UserEmail[:at]
	}
	return entry.UserEmail
}
