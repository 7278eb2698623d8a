package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/entity"
	"github.com/jhoicas/Cuentas-api/internal/domain/inventory"
)

func mov(q int64, from, to inventory.State) *entity.InventoryMovement {
	return &entity.InventoryMovement{Quantity: q, FromState: string(from), ToState: string(to)}
}

func TestValidateTransition(t *testing.T) {
	legal := []inventory.Transition{
		{From: inventory.StateExterno, To: inventory.StateBodega},
		{From: inventory.StateBodega, To: inventory.StateUso},
		{From: inventory.StateUso, To: inventory.StateGastado},
	}
	assert.Equal(t, legal, inventory.LegalTransitions())
	for _, tr := range legal {
		assert.NoError(t, inventory.ValidateTransition(tr.From, tr.To), "%s -> %s", tr.From, tr.To)
		assert.NotEmpty(t, tr.Label())
	}

	illegal := []inventory.Transition{
		{From: inventory.StateBodega, To: inventory.StateGastado},
		{From: inventory.StateUso, To: inventory.StateBodega},
		{From: inventory.StateGastado, To: inventory.StateUso},
		{From: inventory.StateGastado, To: inventory.StateBodega},
		{From: inventory.StateGastado, To: inventory.StateExterno},
		{From: inventory.StateBodega, To: inventory.StateExterno},
		{From: inventory.StateExterno, To: inventory.StateUso},
		{From: inventory.StateExterno, To: inventory.StateGastado},
		{From: inventory.StateBodega, To: inventory.StateBodega},
		{From: "almacen", To: inventory.StateBodega},
	}
	for _, tr := range illegal {
		err := inventory.ValidateTransition(tr.From, tr.To)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tr.From, tr.To)
		assert.Empty(t, tr.Label())
	}
}

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{"50", 50, true},
		{"2.9", 2, true},
		{"0.99", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"-0.5", 0, false},
		{"9223372036854775807", math.MaxInt64, true},
		{"9223372036854775808", 0, false},
		{"18446744073709551621", 0, false},
	}
	for _, c := range cases {
		got, err := inventory.NormalizeQuantity(decimal.RequireFromString(c.in))
		if c.ok {
			require.NoError(t, err, c.in)
			assert.Equal(t, c.want, got, c.in)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity, c.in)
		}
	}
}

func TestApply_BodegaAUso_ExitoSiYSoloSiCabe(t *testing.T) {
	for b := int64(0); b <= 6; b++ {
		for q := int64(-1); q <= 8; q++ {
			current := inventory.Quantities{Bodega: b, Uso: 3, Gastado: 2}
			next, err := inventory.Apply(current, q, inventory.StateBodega, inventory.StateUso)
			if q >= 1 && q <= b {
				require.NoError(t, err, "b=%d q=%d", b, q)
				assert.Equal(t, b-q, next.Bodega)
				assert.Equal(t, current.Uso+q, next.Uso)
				assert.Equal(t, current.Gastado, next.Gastado)
				assert.Equal(t, current.Total(), next.Total(), "los traslados conservan el total")
			} else {
				require.Error(t, err, "b=%d q=%d", b, q)
				assert.Equal(t, current, next, "un rechazo no altera las cantidades")
			}
		}
	}
}

func TestApply_IngresoAumentaTotal(t *testing.T) {
	current := inventory.Quantities{Bodega: 4, Uso: 1}
	next, err := inventory.Apply(current, 10, inventory.StateExterno, inventory.StateBodega)
	require.NoError(t, err)
	assert.Equal(t, int64(14), next.Bodega)
	assert.Equal(t, current.Total()+10, next.Total())
}

func TestApply_IngresoSinDesbordar(t *testing.T) {
	current := inventory.Quantities{Bodega: 5}
	next, err := inventory.Apply(current, math.MaxInt64, inventory.StateExterno, inventory.StateBodega)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, current, next)

	next, err = inventory.Apply(current, math.MaxInt64-5, inventory.StateExterno, inventory.StateBodega)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), next.Bodega)

	// el traslado a uso tampoco puede desbordar el destino
	_, err = inventory.Apply(inventory.Quantities{Bodega: 2, Uso: math.MaxInt64 - 1}, 2, inventory.StateBodega, inventory.StateUso)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApply_OrdenDeValidacion(t *testing.T) {
	empty := inventory.Quantities{}

	// cantidad inválida antes que transición ilegal
	_, err := inventory.Apply(empty, 0, inventory.StateGastado, inventory.StateBodega)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// transición ilegal aunque haya saldo de sobra
	_, err = inventory.Apply(inventory.Quantities{Bodega: 100, Uso: 100}, 1, inventory.StateBodega, inventory.StateGastado)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = inventory.Apply(inventory.Quantities{Uso: 5}, 6, inventory.StateUso, inventory.StateGastado)
	var insufficient *inventory.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, inventory.StateUso, insufficient.State)
	assert.Equal(t, int64(5), insufficient.Available)
	assert.Equal(t, int64(6), insufficient.Requested)
}

func TestDerive_Idempotente(t *testing.T) {
	log := []*entity.InventoryMovement{
		mov(50, inventory.StateExterno, inventory.StateBodega),
		mov(20, inventory.StateBodega, inventory.StateUso),
		mov(5, inventory.StateUso, inventory.StateGastado),
		mov(7, inventory.StateExterno, inventory.StateBodega),
	}
	first := inventory.Derive(log)
	second := inventory.Derive(log)
	assert.Equal(t, first, second)
	assert.Equal(t, inventory.Quantities{Bodega: 37, Uso: 15, Gastado: 5}, first)
	assert.Equal(t, int64(0), first.Of(inventory.StateExterno))
}

func TestEscenarios(t *testing.T) {
	var log []*entity.InventoryMovement
	record := func(q int64, from, to inventory.State) error {
		if _, err := inventory.Apply(inventory.Derive(log), q, from, to); err != nil {
			return err
		}
		log = append(log, mov(q, from, to))
		return nil
	}

	assert.Equal(t, inventory.Quantities{}, inventory.Derive(log))

	// 1: externo -> bodega 50
	require.NoError(t, record(50, inventory.StateExterno, inventory.StateBodega))
	assert.Equal(t, inventory.Quantities{Bodega: 50}, inventory.Derive(log))

	// 2: bodega -> uso 20
	require.NoError(t, record(20, inventory.StateBodega, inventory.StateUso))
	assert.Equal(t, inventory.Quantities{Bodega: 30, Uso: 20}, inventory.Derive(log))

	// 3: uso -> gastado 25 se rechaza
	err := record(25, inventory.StateUso, inventory.StateGastado)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, inventory.Quantities{Bodega: 30, Uso: 20}, inventory.Derive(log))
	assert.Len(t, log, 2, "no se registra movimiento parcial")
}
