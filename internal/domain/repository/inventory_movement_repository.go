package repository

import (
	"context"

	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
// Solo inserción y lectura: el historial es de solo anexado.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ListByItem devuelve el historial completo del artículo en orden cronológico.
	ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryMovement, error)
	// ListByProject devuelve todos los movimientos del proyecto (para derivar stock de varios artículos).
	ListByProject(ctx context.Context, projectID string) ([]*entity.InventoryMovement, error)
}
