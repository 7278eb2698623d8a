package logbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/logbook"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/memory"
)

func TestLogbook(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := logbook.NewLogbookUseCase(store.Logbook())
	as := func(role access.Role) access.Actor {
		return access.Actor{UserID: "u-" + string(role), ProjectID: "p1", Role: role}
	}

	_, err := uc.Create(ctx, as(access.RoleView), dto.CreateLogEntryRequest{Title: "Visita"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, store.Writes())

	_, err = uc.Create(ctx, as(access.RoleNormal), dto.CreateLogEntryRequest{Title: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	older := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	first, err := uc.Create(ctx, as(access.RoleNormal), dto.CreateLogEntryRequest{Title: "Inicio de obra", Date: &older})
	require.NoError(t, err)
	second, err := uc.Create(ctx, as(access.RoleNormal), dto.CreateLogEntryRequest{Title: "Entrega de material", Body: "50 bultos"})
	require.NoError(t, err)

	list, err := uc.List(ctx, as(access.RoleView), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID, "más reciente primero")

	title := "Inicio de obra (acta)"
	updated, err := uc.Update(ctx, as(access.RoleNormal), first.ID, dto.UpdateLogEntryRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	assert.ErrorIs(t, uc.Delete(ctx, as(access.RoleNormal), first.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, as(access.RoleAdmin), first.ID))
	assert.ErrorIs(t, uc.Delete(ctx, as(access.RoleAdmin), first.ID), domain.ErrNotFound)
}
