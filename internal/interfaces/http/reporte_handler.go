package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
)

// ReporteHandler maneja la descarga y el envío por correo del reporte PDF.
type ReporteHandler struct {
	uc *usecase.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *usecase.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Descargar godoc
// @Summary      Descargar reporte de inventario en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        nit  query  string  false  "NIT de la empresa (vacío = todas)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/descargar [get]
func (h *ReporteHandler) Descargar(c *fiber.Ctx) error {
	nit := c.Query("nit")
	pdf, err := h.uc.GenerarPDF(c.Context(), nit)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario_reporte.pdf"`)
	return c.Send(pdf)
}

// EnviarEmail godoc
// @Summary      Enviar reporte de inventario por correo
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarReporteRequest  true  "email destino y nit opcional"
// @Success      200   {object}  dto.EnviarReporteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/reportes/enviar [post]
func (h *ReporteHandler) EnviarEmail(c *fiber.Ctx) error {
	var in dto.EnviarReporteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if err := h.uc.EnviarPorEmail(c.Context(), in.Email, in.NIT); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		if err.Error() == "reporte: SMTP no configurado" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "MAIL_UNAVAILABLE", Message: "el envío de correo no está configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.EnviarReporteResponse{Enviado: true, Email: in.Email})
}
