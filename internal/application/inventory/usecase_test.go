package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	domaininv "github.com/jhoicas/Cuentas-api/internal/domain/inventory"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/memory"
)

const testProjectID = "11111111-1111-1111-1111-111111111111"

func newUseCase() (*inventory.InventoryUseCase, *memory.Store) {
	store := memory.NewStore()
	return inventory.NewInventoryUseCase(store.TxRunner(), store.Items(), store.Movements()), store
}

func actorWith(role access.Role) access.Actor {
	return access.Actor{UserID: "user-" + string(role), ProjectID: testProjectID, Role: role}
}

func movement(q string, from, to domaininv.State) dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		Quantity:  decimal.RequireFromString(q),
		FromState: string(from),
		ToState:   string(to),
	}
}

func createItem(t *testing.T, uc *inventory.InventoryUseCase, name string) *dto.ItemResponse {
	t.Helper()
	item, err := uc.CreateItem(context.Background(), actorWith(access.RoleNormal), dto.CreateItemRequest{Name: name})
	require.NoError(t, err)
	return item
}

func TestCreateMovement_Escenarios(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	item := createItem(t, uc, "Cemento")
	assert.Equal(t, dto.StockDTO{}, item.Stock)

	normal := actorWith(access.RoleNormal)

	res, err := uc.CreateMovement(ctx, normal, item.ID, movement("50", domaininv.StateExterno, domaininv.StateBodega))
	require.NoError(t, err)
	assert.Equal(t, dto.StockDTO{Bodega: 50}, res.Stock)
	assert.Equal(t, int64(50), res.Movement.Quantity)

	res, err = uc.CreateMovement(ctx, normal, item.ID, movement("20", domaininv.StateBodega, domaininv.StateUso))
	require.NoError(t, err)
	assert.Equal(t, dto.StockDTO{Bodega: 30, Uso: 20}, res.Stock)

	_, err = uc.CreateMovement(ctx, normal, item.ID, movement("25", domaininv.StateUso, domaininv.StateGastado))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := uc.GetItem(ctx, actorWith(access.RoleView), item.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StockDTO{Bodega: 30, Uso: 20}, got.Stock)

	history, err := uc.ListMovements(ctx, actorWith(access.RoleView), item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2, "el movimiento rechazado no queda en el historial")
}

func TestCreateMovement_VisorNoPersisteNada(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()
	item := createItem(t, uc, "Arena")
	before := store.Writes()

	_, err := uc.CreateMovement(ctx, actorWith(access.RoleView), item.ID, movement("5", domaininv.StateExterno, domaininv.StateBodega))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	var denied *access.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, access.PermWrite, denied.Permission)
	assert.Equal(t, before, store.Writes())
}

func TestCreateMovement_ValidacionesPrevias(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()
	item := createItem(t, uc, "Pintura")
	normal := actorWith(access.RoleNormal)
	before := store.Writes()

	_, err := uc.CreateMovement(ctx, normal, item.ID, movement("0.4", domaininv.StateExterno, domaininv.StateBodega))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.CreateMovement(ctx, normal, item.ID, movement("3", domaininv.StateBodega, domaininv.StateGastado))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// estados con mayúsculas y espacios se normalizan
	res, err := uc.CreateMovement(ctx, normal, item.ID, dto.CreateMovementRequest{
		Quantity: decimal.RequireFromString("7.8"), FromState: " Externo", ToState: "BODEGA ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Movement.Quantity)
	assert.Equal(t, before+1, store.Writes())
}

func TestCreateMovement_CantidadesFueraDeRango(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()
	item := createItem(t, uc, "Varilla")
	normal := actorWith(access.RoleNormal)
	before := store.Writes()

	_, err := uc.CreateMovement(ctx, normal, item.ID, movement("18446744073709551621", domaininv.StateExterno, domaininv.StateBodega))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, before, store.Writes())

	_, err = uc.CreateMovement(ctx, normal, item.ID, movement("5", domaininv.StateExterno, domaininv.StateBodega))
	require.NoError(t, err)
	_, err = uc.CreateMovement(ctx, normal, item.ID, movement("9223372036854775807", domaininv.StateExterno, domaininv.StateBodega))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	got, err := uc.GetItem(ctx, normal, item.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StockDTO{Bodega: 5}, got.Stock)
}

func TestCreateMovement_ArticuloInexistenteOEliminado(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	normal := actorWith(access.RoleNormal)

	_, err := uc.CreateMovement(ctx, normal, "no-existe", movement("1", domaininv.StateExterno, domaininv.StateBodega))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	item := createItem(t, uc, "Ladrillo")
	_, err = uc.CreateMovement(ctx, normal, item.ID, movement("10", domaininv.StateExterno, domaininv.StateBodega))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteItem(ctx, actorWith(access.RoleAdmin), item.ID))

	_, err = uc.CreateMovement(ctx, normal, item.ID, movement("1", domaininv.StateBodega, domaininv.StateUso))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el historial del artículo eliminado sigue consultable
	history, err := uc.ListMovements(ctx, normal, item.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	list, err := uc.ListItems(ctx, normal, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreateMovement_OtroProyectoNoVeElArticulo(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	item := createItem(t, uc, "Tubos")

	other := access.Actor{UserID: "u9", ProjectID: "otro", Role: access.RoleOwner}
	_, err := uc.CreateMovement(ctx, other, item.ID, movement("1", domaininv.StateExterno, domaininv.StateBodega))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetItem(ctx, other, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMovement_ConcurrenciaNoDejaSaldoNegativo(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	item := createItem(t, uc, "Tornillos")
	normal := actorWith(access.RoleNormal)
	_, err := uc.CreateMovement(ctx, normal, item.ID, movement("10", domaininv.StateExterno, domaininv.StateBodega))
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.CreateMovement(ctx, normal, item.ID, movement("3", domaininv.StateBodega, domaininv.StateUso)); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok, "solo caben tres traslados de 3 unidades")
	got, err := uc.GetItem(ctx, normal, item.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StockDTO{Bodega: 1, Uso: 9}, got.Stock)
}

func TestItemCRUD_Permisos(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase()

	_, err := uc.CreateItem(ctx, actorWith(access.RoleView), dto.CreateItemRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, store.Writes())

	_, err = uc.CreateItem(ctx, actorWith(access.RoleNormal), dto.CreateItemRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := decimal.NewFromInt(-1)
	_, err = uc.CreateItem(ctx, actorWith(access.RoleNormal), dto.CreateItemRequest{Name: "X", UnitValue: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	item := createItem(t, uc, "Vigas")
	name := "Vigas de acero"
	updated, err := uc.UpdateItem(ctx, actorWith(access.RoleNormal), item.ID, dto.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	err = uc.DeleteItem(ctx, actorWith(access.RoleNormal), item.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "normal no puede eliminar")

	require.NoError(t, uc.DeleteItem(ctx, actorWith(access.RoleOwner), item.ID))
	_, err = uc.GetItem(ctx, actorWith(access.RoleOwner), item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
