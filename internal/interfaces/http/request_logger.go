package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/pkg/logger"
)

// localInternalError guarda el error original de las respuestas 500 para el log.
const localInternalError = "internal_error"

// RequestLogger registra cada petición con zerolog: método, ruta, estado y latencia,
// más el usuario y el proyecto cuando ya se resolvieron.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if err, ok := c.Locals(localInternalError).(error); ok {
				ev = ev.Err(err)
			} else if chainErr != nil {
				ev = ev.Err(chainErr)
			}
		}
		ev = ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if userID := GetUserID(c); userID != "" {
			ev = ev.Str("user_id", userID)
		}
		if actor, ok := GetActor(c); ok {
			ev = ev.Str("project_id", actor.ProjectID).Str("role", string(actor.Role))
		}
		ev.Msg("http")
		return chainErr
	}
}
