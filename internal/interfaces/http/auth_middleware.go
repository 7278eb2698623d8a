package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/dto"
	"github.com/jhoicas/Cuentas-api/internal/domain"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID = "user_id"
	LocalActor  = "actor"
)

// AuthMiddleware valida el Bearer Token JWT y deja el UserID en c.Locals.
// El rol no viaja en el token: depende del proyecto y lo resuelve ProjectAccess.
func AuthMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// actorResolver es el contrato mínimo que necesita ProjectAccess.
// Lo implementa *authz.Authorizer.
type actorResolver interface {
	Actor(ctx context.Context, projectID, userID string) (access.Actor, error)
}

// ProjectAccess resuelve la membresía del usuario en :projectID y deja el access.Actor
// en c.Locals. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay user_id en el contexto.
//   - 403 NOT_MEMBER si el usuario no pertenece al proyecto o el id no es un UUID.
//   - 500 ante fallos del almacén.
func ProjectAccess(resolver actorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		}
		if c.Params("projectID") == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de proyecto requerido"})
		}
		// un id mal formado se trata igual que un proyecto al que no se pertenece
		projectID, err := pathID(c, "projectID")
		if err != nil {
			return notMember(c)
		}
		actor, err := resolver.Actor(c.UserContext(), projectID, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotMember) {
				return notMember(c)
			}
			return writeError(c, err)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

func notMember(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_MEMBER", Message: "no perteneces a este proyecto"})
}

// RequirePermission corta la petición si el rol del actor no incluye el permiso.
// Los casos de uso vuelven a verificar antes de persistir.
func RequirePermission(perm access.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "actor no resuelto"})
		}
		if err := actor.Require(perm); err != nil {
			return writeError(c, err)
		}
		return c.Next()
	}
}

// GetActor devuelve el actor resuelto por ProjectAccess.
func GetActor(c *fiber.Ctx) (access.Actor, bool) {
	actor, ok := c.Locals(LocalActor).(access.Actor)
	return actor, ok
}
