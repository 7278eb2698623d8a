package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /inventory/items.
type CreateItemRequest struct {
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty"`
	ThumbnailRef string           `json:"thumbnail_ref,omitempty"`
}

// UpdateItemRequest body para PUT /inventory/items/:itemID. Campos nil no se modifican.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty"`
	ThumbnailRef *string          `json:"thumbnail_ref,omitempty"`
}

// StockDTO cantidades derivadas del historial de movimientos.
type StockDTO struct {
	Bodega  int64 `json:"qty_bodega"`
	Uso     int64 `json:"qty_uso"`
	Gastado int64 `json:"qty_gastado"`
}

// ItemResponse artículo con su stock derivado.
type ItemResponse struct {
	ID           string           `json:"id"`
	ProjectID    string           `json:"project_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty"`
	ThumbnailRef string           `json:"thumbnail_ref,omitempty"`
	Stock        StockDTO         `json:"stock"`
	CreatedBy    string           `json:"created_by"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateMovementRequest body para POST /inventory/items/:itemID/movements.
// quantity se trunca a unidades enteras.
type CreateMovementRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	FromState string          `json:"from_state"`
	ToState   string          `json:"to_state"`
	Note      string          `json:"note,omitempty"`
}

// MovementResponse movimiento registrado.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Quantity  int64     `json:"quantity"`
	FromState string    `json:"from_state"`
	ToState   string    `json:"to_state"`
	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMovementResponse movimiento registrado y stock resultante (recalculado del historial).
type CreateMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    StockDTO         `json:"stock"`
}
