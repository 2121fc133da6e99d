package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
)

// EmpresaHandler maneja las peticiones HTTP para Empresa.
// Lecturas abiertas a cualquier usuario autenticado; mutaciones solo admin (ver router).
type EmpresaHandler struct {
	uc *usecase.EmpresaUseCase
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpresaRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.EmpresaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.NIT == "" || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nit y nombre son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el NIT ya está registrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de empresa inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByNIT godoc
// @Summary      Obtener empresa por NIT
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        nit  path  string  true  "NIT de la empresa"
// @Success      200  {object}  dto.EmpresaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{nit} [get]
func (h *EmpresaHandler) GetByNIT(c *fiber.Ctx) error {
	nit := c.Params("nit")
	if nit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NIT", Message: "nit es requerido"})
	}
	out, err := h.uc.GetByNIT(nit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         empresas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.EmpresaListResponse
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa (el NIT no se puede cambiar)
// @Tags         empresas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nit   path  string  true  "NIT de la empresa"
// @Param        body  body  dto.UpdateEmpresaRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EmpresaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/empresas/{nit} [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	nit := c.Params("nit")
	if nit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NIT", Message: "nit es requerido"})
	}
	var in dto.UpdateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(nit, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa (y sus productos, en cascada)
// @Tags         empresas
// @Security     Bearer
// @Param        nit  path  string  true  "NIT de la empresa"
// @Success      204  "Sin contenido"
// @Router       /api/empresas/{nit} [delete]
func (h *EmpresaHandler) Delete(c *fiber.Ctx) error {
	nit := c.Params("nit")
	if nit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NIT", Message: "nit es requerido"})
	}
	if err := h.uc.Delete(nit); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
