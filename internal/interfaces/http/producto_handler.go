package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
)

// ProductoHandler maneja las peticiones HTTP para Producto.
//
// El endpoint Create es la única vía de escritura que usa la carga masiva:
// el importador del cliente lo invoca fila por fila y distingue el 409 del
// resto de errores para armar el reporte por registro.
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Codigo == "" || in.Nombre == "" || in.EmpresaNIT == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo, nombre y empresa son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch err {
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "código ya existe en esta empresa"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "EMPRESA_NOT_FOUND", Message: "la empresa no existe"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de producto inválidos: todos los precios deben ser mayores a 0"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos, opcionalmente filtrados por empresa
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        empresa  query  string  false  "NIT de la empresa (vacío = todas)"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200      {object}  dto.ProductoListResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	nit := c.Query("empresa")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(nit, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (código y empresa no cambian)
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductoRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	var in dto.UpdateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "todos los precios deben ser mayores a 0"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Param        id  path  int  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	if err := h.uc.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
