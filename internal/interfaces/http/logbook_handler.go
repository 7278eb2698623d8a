package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/logbook"
)

// LogbookHandler bitácora del proyecto.
type LogbookHandler struct {
	uc *logbook.LogbookUseCase
}

func NewLogbookHandler(uc *logbook.LogbookUseCase) *LogbookHandler {
	return &LogbookHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora
// @Tags         logbook
// @Security     Bearer
// @Produce      json
// @Param        projectID  path   string  true   "ID del proyecto"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.LogEntryListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/logbook [get]
func (h *LogbookHandler) List(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), actor, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar nota a la bitácora
// @Tags         logbook
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        body  body  dto.CreateLogEntryRequest  true  "title, body, date"
// @Success      201  {object}  dto.LogEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/logbook [post]
func (h *LogbookHandler) Create(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateLogEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar nota de la bitácora
// @Tags         logbook
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        entryID    path  string  true  "ID de la nota"
// @Param        body  body  dto.UpdateLogEntryRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.LogEntryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/logbook/{entryID} [put]
func (h *LogbookHandler) Update(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateLogEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entryID, err := pathID(c, "entryID")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), actor, entryID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota de la bitácora
// @Tags         logbook
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        entryID    path  string  true  "ID de la nota"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/logbook/{entryID} [delete]
func (h *LogbookHandler) Delete(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	entryID, err := pathID(c, "entryID")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), actor, entryID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
