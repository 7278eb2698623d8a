package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/report"
)

// ReportHandler descarga del reporte PDF del proyecto.
type ReportHandler struct {
	uc *report.ReportUseCase
}

func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Download godoc
// @Summary      Reporte PDF del proyecto
// @Description  Resumen financiero, inventario por estado, últimos movimientos y bitácora.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        projectID  path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectID}/report.pdf [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	pdf, filename, err := h.uc.Generate(c.UserContext(), actor)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(pdf)
}
