package config

import (
	"fmt"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// defaultLocations are the facility checkpoints shipped with the
// building. LOCATIONS in the environment overrides the whole list.
var defaultLocations = []string{
	"Planta Baja - Baño Hombres",
	"Planta Baja - Baño Mujeres",
	"Piso 1 - Baño Hombres",
	"Piso 1 - Baño Mujeres",
	"Piso 2 - Baño Hombres",
	"Piso 2 - Baño Mujeres",
}

// InitDB opens the record store. MySQL when DB_HOST is set, otherwise
// a local SQLite file so the app runs without infrastructure.
func InitDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "serviciosgenerales.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		host,
		port,
		os.Getenv("DB_NAME"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// Locations returns the configured checkpoint list, in display order.
// Filtering and the status board only work for names matching exactly.
func Locations() []string {
	raw := os.Getenv("LOCATIONS")
	if raw == "" {
		out := make([]string, len(defaultLocations))
		copy(out, defaultLocations)
		return out
	}

	var out []string
	for _, loc := range strings.Split(raw, ",") {
		loc = strings.TrimSpace(loc)
		if loc != "" {
			out = append(out, loc)
		}
	}
	return out
}

// IsValidLocation reports whether a location is part of the
// configured set.
func IsValidLocation(location string) bool {
	for _, loc := range Locations() {
		if loc == location {
			return true
		}
	}
	return false
}
