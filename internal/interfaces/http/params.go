package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Cuentas-api/internal/domain"
)

// pathID lee un id UUID de la ruta. Un id mal formado no puede existir: ErrNotFound.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	return id.String(), nil
}
