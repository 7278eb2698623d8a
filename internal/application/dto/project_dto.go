package dto

import "time"

// CreateProjectRequest body para POST /api/projects.
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency,omitempty"` // por defecto COP
}

// UpdateProjectRequest body para PUT /api/projects/:projectID.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Currency    *string `json:"currency,omitempty"`
}

// ProjectResponse salida de un proyecto; Role es el rol de quien consulta.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Currency    string    `json:"currency"`
	OwnerID     string    `json:"owner_id"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse listado de proyectos del usuario.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// MemberResponse miembro de un proyecto.
type MemberResponse struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"joined_at"`
}

// ChangeRoleRequest body para PUT /members/:userID.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin normal view"`
}

// CreateInviteRequest body para POST /invites.
type CreateInviteRequest struct {
	Role           string `json:"role,omitempty"` // por defecto normal
	ExpiresInHours int    `json:"expires_in_hours,omitempty"`
	MaxUses        int    `json:"max_uses,omitempty"`
}

// InviteResponse invitación; Code solo se devuelve al crearla.
type InviteResponse struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Code      string     `json:"code,omitempty"`
	Prefix    string     `json:"prefix"`
	Role      string     `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
	MaxUses   int        `json:"max_uses"`
	Uses      int        `json:"uses"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// JoinProjectRequest body para POST /api/invites/join.
type JoinProjectRequest struct {
	Code string `json:"code" validate:"required"`
}
