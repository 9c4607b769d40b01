package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleLimpieza = "limpieza"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         string     `gorm:"type:varchar(20);not null" json:"role"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastAccessAt *time.Time `json:"last_access_at"`
}

// DefaultRoleForEmail picks the role for a self-registered account.
// Inherited rule: an email containing "admin" gets the admin role.
// Kept in one place so it can be swapped for an allow-list later.
func DefaultRoleForEmail(email string) string {
	if strings.Contains(strings.ToLower(email), "admin") {
		return RoleAdmin
	}
	return RoleLimpieza
}

// DisplayName falls back to the local part of the email when the
// account has no name set.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
