package dto

import "time"

// CreateLogEntryRequest body para POST /logbook.
type CreateLogEntryRequest struct {
	Title string     `json:"title"`
	Body  string     `json:"body,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

// UpdateLogEntryRequest body para PUT /logbook/:entryID.
type UpdateLogEntryRequest struct {
	Title *string    `json:"title,omitempty"`
	Body  *string    `json:"body,omitempty"`
	Date  *time.Time `json:"date,omitempty"`
}

// LogEntryResponse nota de bitácora.
type LogEntryResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Date      time.Time `json:"date"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogEntryListResponse listado paginado de la bitácora.
type LogEntryListResponse struct {
	Items []LogEntryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
