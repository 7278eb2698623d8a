package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para artículos de inventario.
// GetByID devuelve (nil, nil) si no existe.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// ListByProject excluye artículos eliminados.
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]*entity.InventoryItem, error)
}
