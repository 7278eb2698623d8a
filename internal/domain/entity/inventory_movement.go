package entity

import "time"

// InventoryMovement traslado inmutable de unidades de un artículo entre estados
// (externo, bodega, uso, gastado). Nunca se edita ni se elimina.
type InventoryMovement struct {
	ID        string
	ProjectID string
	ItemID    string
	Quantity  int64 // siempre positivo
	FromState string
	ToState   string
	Note      string
	CreatedBy string
	CreatedAt time.Time
}
