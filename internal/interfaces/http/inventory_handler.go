package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de artículos y movimientos de inventario.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListItems godoc
// @Summary      Listar artículos con existencias por estado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        projectID  path   string  true   "ID del proyecto"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	page := pageFromQuery(c)
	out, err := h.uc.ListItems(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        body  body  dto.CreateItemRequest  true  "name, description, unit_value, thumbnail_ref"
// @Success      201  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateItem(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obtener artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        itemID     path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items/{itemID} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := pathID(c, "itemID")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetItem(c.UserContext(), actor, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Editar artículo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        itemID     path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items/{itemID} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	itemID, err := pathID(c, "itemID")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), actor, itemID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar artículo
// @Description  El historial de movimientos se conserva.
// @Tags         inventory
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        itemID     path  string  true  "ID del artículo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items/{itemID} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := pathID(c, "itemID")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteItem(c.UserContext(), actor, itemID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Historial de movimientos del artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        itemID     path  string  true  "ID del artículo"
// @Success      200  {array}   dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items/{itemID}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := pathID(c, "itemID")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), actor, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Transiciones válidas: externo→bodega, bodega→uso, uso→gastado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        itemID     path  string  true  "ID del artículo"
// @Param        body  body  dto.CreateMovementRequest  true  "quantity, from_state, to_state, note"
// @Success      201  {object}  dto.CreateMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/inventory/items/{itemID}/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	itemID, err := pathID(c, "itemID")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateMovement(c.UserContext(), actor, itemID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
