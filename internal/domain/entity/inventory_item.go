package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem artículo inventariable de un proyecto.
// Las cantidades por estado no se guardan: se derivan de sus movimientos.
type InventoryItem struct {
	ID           string
	ProjectID    string
	Name         string
	Description  string
	UnitValue    *decimal.Decimal // valor monetario unitario (opcional)
	ThumbnailRef string           // referencia opaca al almacenamiento externo
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // borrado lógico; el historial de movimientos se conserva
}

// Deleted informa si el artículo fue eliminado.
func (i *InventoryItem) Deleted() bool { return i.DeletedAt != nil }
