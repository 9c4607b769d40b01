package models

import (
	"time"
)

// CleaningLog is one append-only cleaning record. The actor is kept as
// denormalized email/name strings, not a foreign key: records must
// survive account edits untouched.
type CleaningLog struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PublicID  string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	Location  string    `gorm:"type:varchar(100);index;not null" json:"location"`
	Fecha     time.Time `gorm:"index;not null" json:"fecha"`
	UserEmail string    `gorm:"type:varchar(255);index;not null" json:"user_email"`
	UserName  string    `gorm:"type:varchar(255);not null" json:"user_name"`

	// Report fields are set at creation and never change afterwards.
	// ReportText is non-nil exactly when HasReport is true.
	HasReport  bool    `gorm:"index;not null" json:"has_report"`
	ReportText *string `gorm:"type:text" json:"report_text"`

	// Review fields are stamped once, on the pending -> reviewed
	// transition, and are immutable after that.
	Reviewed   bool       `gorm:"not null;default:false" json:"reviewed"`
	ReviewedBy *string    `gorm:"type:varchar(255)" json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
}

// Status returns the review state as rendered to admins.
func (l *CleaningLog) Status() string {
	if !l.HasReport {
		return "registrado"
	}
	if l.Reviewed {
		return "revisado"
	}
	return "pendiente"
}
