package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/application/project"
)

// MemberHandler gestión de miembros e invitaciones de un proyecto.
type MemberHandler struct {
	members *project.MemberUseCase
	invites *project.InviteUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(members *project.MemberUseCase, invites *project.InviteUseCase) *MemberHandler {
	return &MemberHandler{members: members, invites: invites}
}

// ListMembers godoc
// @Summary      Listar miembros
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.MemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.members.ListMembers(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeRole godoc
// @Summary      Cambiar rol de un miembro
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        userID     path  string  true  "ID del usuario"
// @Param        body  body  dto.ChangeRoleRequest  true  "admin | normal | view"
// @Success      200  {object}  dto.MemberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/members/{userID} [put]
func (h *MemberHandler) ChangeRole(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.members.ChangeRole(c.UserContext(), actor, c.Params("userID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveMember godoc
// @Summary      Quitar miembro
// @Tags         members
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        userID     path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/members/{userID} [delete]
func (h *MemberHandler) RemoveMember(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.members.RemoveMember(c.UserContext(), actor, c.Params("userID")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Leave godoc
// @Summary      Salir del proyecto
// @Description  El owner no puede salir de su propio proyecto.
// @Tags         members
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/leave [post]
func (h *MemberHandler) Leave(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.members.Leave(c.UserContext(), actor); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInvites godoc
// @Summary      Listar invitaciones
// @Tags         invites
// @Security     Bearer
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Success      200  {array}   dto.InviteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/invites [get]
func (h *MemberHandler) ListInvites(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.invites.ListInvites(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateInvite godoc
// @Summary      Crear código de invitación
// @Description  El código completo solo se devuelve en esta respuesta.
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        body  body  dto.CreateInviteRequest  false  "role, expires_in_hours, max_uses"
// @Success      201  {object}  dto.InviteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/invites [post]
func (h *MemberHandler) CreateInvite(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateInviteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.invites.CreateInvite(c.UserContext(), actor, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RevokeInvite godoc
// @Summary      Revocar invitación
// @Tags         invites
// @Security     Bearer
// @Param        projectID  path  string  true  "ID del proyecto"
// @Param        inviteID   path  string  true  "ID de la invitación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/invites/{inviteID} [delete]
func (h *MemberHandler) RevokeInvite(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	inviteID, err := pathID(c, "inviteID")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.invites.RevokeInvite(c.UserContext(), actor, inviteID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Join godoc
// @Summary      Unirse a un proyecto con código
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.JoinProjectRequest  true  "Código de invitación"
// @Success      201  {object}  dto.MemberResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/invites/join [post]
func (h *MemberHandler) Join(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.JoinProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.invites.JoinWithCode(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
