// Package inventory implementa la máquina de estados del inventario (servicio de dominio).
//
//	externo -> bodega   ingresar a bodega
//	bodega  -> uso      mover a uso
//	uso     -> gastado  marcar gastado
//
// externo es un origen virtual: nunca acumula saldo ni es destino. Las cantidades por
// estado se derivan siempre del historial completo de movimientos.
package inventory

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
)

// State estado de stock.
type State string

// Estados del inventario.
const (
	StateExterno State = "externo"
	StateBodega  State = "bodega"
	StateUso     State = "uso"
	StateGastado State = "gastado"
)

// Transition par origen/destino.
type Transition struct {
	From State
	To   State
}

var legalTransitions = map[Transition]string{
	{From: StateExterno, To: StateBodega}: "ingresar a bodega",
	{From: StateBodega, To: StateUso}:     "mover a uso",
	{From: StateUso, To: StateGastado}:    "marcar gastado",
}

// LegalTransitions devuelve las transiciones permitidas en orden de flujo.
func LegalTransitions() []Transition {
	return []Transition{
		{From: StateExterno, To: StateBodega},
		{From: StateBodega, To: StateUso},
		{From: StateUso, To: StateGastado},
	}
}

// Label nombre de la acción asociada a la transición ("" si no es legal).
func (t Transition) Label() string { return legalTransitions[t] }

// ValidateTransition devuelve ErrInvalidTransition si el par no es legal.
func ValidateTransition(from, to State) error {
	if _, ok := legalTransitions[Transition{From: from, To: to}]; !ok {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// NormalizeQuantity trunca la cantidad a unidades enteras y exige 1 <= q <= math.MaxInt64.
func NormalizeQuantity(q decimal.Decimal) (int64, error) {
	whole := q.Truncate(0)
	if whole.LessThan(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidQuantity, q.String())
	}
	if !whole.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s excede el máximo", domain.ErrInvalidQuantity, q.String())
	}
	return whole.IntPart(), nil
}

// Quantities cantidades derivadas por estado.
type Quantities struct {
	Bodega  int64
	Uso     int64
	Gastado int64
}

// Total unidades rastreadas (bodega + uso + gastado).
func (q Quantities) Total() int64 { return q.Bodega + q.Uso + q.Gastado }

// Of cantidad en el estado indicado; externo siempre es 0.
func (q Quantities) Of(s State) int64 {
	switch s {
	case StateBodega:
		return q.Bodega
	case StateUso:
		return q.Uso
	case StateGastado:
		return q.Gastado
	}
	return 0
}

func (q *Quantities) add(s State, n int64) {
	switch s {
	case StateBodega:
		q.Bodega += n
	case StateUso:
		q.Uso += n
	case StateGastado:
		q.Gastado += n
	}
}

// Derive recalcula las cantidades por estado a partir del historial de movimientos.
// No modifica la entrada: dos llamadas con el mismo historial dan el mismo resultado.
func Derive(movements []*entity.InventoryMovement) Quantities {
	var q Quantities
	for _, m := range movements {
		if m == nil {
			continue
		}
		q.add(State(m.FromState), -m.Quantity)
		q.add(State(m.ToState), m.Quantity)
	}
	return q
}

// InsufficientBalanceError la cantidad pedida supera el saldo del estado origen.
// errors.Is(err, domain.ErrInsufficientStock) es true.
type InsufficientBalanceError struct {
	State     State
	Available int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("cantidad supera lo disponible en %s: solicitado %d, disponible %d",
		e.State, e.Requested, e.Available)
}

func (e *InsufficientBalanceError) Unwrap() error { return domain.ErrInsufficientStock }

// Apply valida un movimiento contra las cantidades actuales y devuelve las resultantes.
// Orden de validación: cantidad, transición, saldo del origen. Si falla, current no cambia.
func Apply(current Quantities, quantity int64, from, to State) (Quantities, error) {
	if quantity < 1 {
		return current, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}
	if err := ValidateTransition(from, to); err != nil {
		return current, err
	}
	if from != StateExterno {
		if available := current.Of(from); quantity > available {
			return current, &InsufficientBalanceError{State: from, Available: available, Requested: quantity}
		}
	}
	if current.Of(to) > math.MaxInt64-quantity {
		return current, fmt.Errorf("%w: %s superaría el máximo", domain.ErrInvalidQuantity, to)
	}
	next := current
	next.add(from, -quantity)
	next.add(to, quantity)
	return next, nil
}
