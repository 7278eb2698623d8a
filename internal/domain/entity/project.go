package entity

import "time"

// Project representa un libro contable compartido entre varios miembros.
type Project struct {
	ID          string
	Name        string
	Description string
	Currency    string // ISO 4217, ej. COP
	OwnerID     string // creador; único miembro con rol owner
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
