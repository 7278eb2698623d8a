package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// InviteRepository define el puerto de persistencia para códigos de invitación.
type InviteRepository interface {
	Create(ctx context.Context, invite *entity.Invite) error
	GetByID(ctx context.Context, id string) (*entity.Invite, error)
	GetByPrefix(ctx context.Context, prefix string) (*entity.Invite, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Invite, error)
	IncrementUses(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string, at time.Time) error
}
