package entity

import "time"

// LogEntry nota de la bitácora del proyecto.
type LogEntry struct {
	ID        string
	ProjectID string
	Title     string
	Body      string
	Date      time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
