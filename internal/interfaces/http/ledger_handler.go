package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/ledger"
)

// LedgerHandler ingresos, gastos, ajustes de saldo y resumen de un proyecto.
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// ListEntries godoc
// @Summary      Listar ingresos y gastos
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        projectID  path   string  true   "ID del proyecto"
// @Param        kind       query  string  false  "income | expense"
// @Param        from       query  string  false  "Fecha inicial (YYYY-MM-DD o RFC3339)"
// @Param        to         query  string  false  "Fecha final inclusiva (YYYY-MM-DD o RFC3339)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.EntryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/entries [get]
func (h *LedgerHandler) ListEntries(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	from, err := parseDateQuery(c.Query("from"), false)
	if err != nil {
		return badQuery(c)
	}
	to, err := parseDateQuery(c.Query("to"), true)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListEntries(c.UserContext(), actor, dto.EntryFilter{
		Kind:        c.Query("kind"),
		From:        from,
		To:          to,
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEntry godoc
// @Summary      Registrar ingreso o gasto
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        body  body  dto.CreateEntryRequest  true  "kind, amount, category, description, date"
// @Success      201  {object}  dto.EntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/entries [post]
func (h *LedgerHandler) CreateEntry(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateEntry(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEntry godoc
// @Summary      Editar ingreso o gasto
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        entryID    path  string  true  "ID del registro"
// @Param        body  body  dto.UpdateEntryRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.EntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/entries/{entryID} [put]
func (h *LedgerHandler) UpdateEntry(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entryID, err := pathID(c, "entryID")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateEntry(c.UserContext(), actor, entryID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteEntry godoc
// @Summary      Eliminar ingreso o gasto
// @Tags         ledger
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        entryID    path  string  true  "ID del registro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/entries/{entryID} [delete]
func (h *LedgerHandler) DeleteEntry(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	entryID, err := pathID(c, "entryID")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteEntry(c.UserContext(), actor, entryID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAdjustments godoc
// @Summary      Listar ajustes de saldo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        projectID  path   string  true   "ID del proyecto"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AdjustmentListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/balances [get]
func (h *LedgerHandler) ListAdjustments(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ListAdjustments(c.UserContext(), actor, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateAdjustment godoc
// @Summary      Registrar ajuste de saldo
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        body  body  dto.CreateAdjustmentRequest  true  "amount (con signo), reason, date"
// @Success      201  {object}  dto.AdjustmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/balances [post]
func (h *LedgerHandler) CreateAdjustment(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateAdjustment(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteAdjustment godoc
// @Summary      Eliminar ajuste de saldo
// @Tags         ledger
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        id         path  string  true  "ID del ajuste"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/balances/{id} [delete]
func (h *LedgerHandler) DeleteAdjustment(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	adjustmentID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteAdjustment(c.UserContext(), actor, adjustmentID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumen financiero
// @Description  saldo = ingresos - gastos + ajustes
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Summary(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery acepta YYYY-MM-DD o RFC3339. Con endOfDay una fecha sin hora
// cubre el día completo.
func parseDateQuery(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
