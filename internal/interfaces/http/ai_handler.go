package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
)

// AIHandler maneja los endpoints asistidos por IA: descripciones comerciales
// y registro de productos por dictado de voz.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// GenerarDescripcion godoc
// @Summary      Generar descripción comercial con IA
// @Description  Recibe nombre y características de un producto y devuelve una
//               descripción de venta corta generada por el modelo. Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DescripcionRequest  true  "nombre (obligatorio) y caracteristicas (opcional)"
// @Success      200   {object}  dto.DescripcionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/ai/descripcion [post]
func (h *AIHandler) GenerarDescripcion(c *fiber.Ctx) error {
	var req dto.DescripcionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	result, err := h.uc.GenerarDescripcion(c.Context(), req)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(result)
}

// TranscribirVoz godoc
// @Summary      Extraer un producto de un dictado de voz
// @Description  Recibe un archivo de audio (multipart, campo "audio"), lo transcribe
//               con Whisper y devuelve los campos del producto que el modelo reconoció.
// @Tags         ai
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Dictado de voz (webm, mp3, wav...)"
// @Success      200    {object}  dto.VozProductoDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      408    {object}  dto.ErrorResponse
// @Failure      503    {object}  dto.ErrorResponse
// @Router       /api/ai/voz [post]
func (h *AIHandler) TranscribirVoz(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "MISSING_AUDIO", Message: "se requiere el archivo de audio en el campo 'audio'",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_AUDIO", Message: "no se pudo leer el archivo de audio",
		})
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_AUDIO", Message: "no se pudo leer el archivo de audio",
		})
	}

	result, err := h.uc.TranscribirVoz(c.Context(), audio, fh.Filename)
	if err != nil {
		return aiError(c, err)
	}
	return c.JSON(result)
}

// aiError traduce errores del use case de IA a respuestas HTTP.
func aiError(c *fiber.Ctx, err error) error {
	if errors.Is(err, c.Context().Err()) || isTimeout(err) {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
			Code: "TIMEOUT", Message: "el servicio de IA tardó demasiado; intenta de nuevo",
		})
	}
	if strings.Contains(err.Error(), "obligatorio") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	}
	if strings.Contains(err.Error(), "GROQ_API_KEY") {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "AI_UNAVAILABLE", Message: "el servicio de IA no está configurado",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}

// isTimeout detecta errores de timeout/cancelación de contexto en el mensaje de error.
func isTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "cancelación")
}
