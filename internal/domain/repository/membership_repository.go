package repository

import (
	"context"

	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// MembershipRepository define el puerto de persistencia para miembros de proyecto.
// Create devuelve domain.ErrConflict si el usuario ya es miembro.
type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	Get(ctx context.Context, projectID, userID string) (*entity.Membership, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Membership, error)
	UpdateRole(ctx context.Context, projectID, userID string, role access.Role) error
	Delete(ctx context.Context, projectID, userID string) error
}
