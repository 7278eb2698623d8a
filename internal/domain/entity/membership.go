package entity

import (
	"time"

	"github.com/jhoicas/Cuentas-api/internal/domain/access"
)

// Membership une un usuario a un proyecto con exactamente un rol.
type Membership struct {
	ProjectID string
	UserID    string
	Role      access.Role
	CreatedAt time.Time
}

// ProjectMembership proyecto visto por uno de sus miembros (listado "mis proyectos").
type ProjectMembership struct {
	Project Project
	Role    access.Role
}
