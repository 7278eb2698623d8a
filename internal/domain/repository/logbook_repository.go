package repository

import (
	"context"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// LogbookRepository define el puerto de persistencia para la bitácora.
type LogbookRepository interface {
	Create(ctx context.Context, entry *entity.LogEntry) error
	GetByID(ctx context.Context, id string) (*entity.LogEntry, error)
	Update(ctx context.Context, entry *entity.LogEntry) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*entity.LogEntry, error)
}
