package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto. Precios mapea
// código de moneda -> valor (> 0); se espera al menos una entrada.
type CreateProductoRequest struct {
	Codigo          string                     `json:"codigo" validate:"required,max=50"`
	Nombre          string                     `json:"nombre" validate:"required,max=255"`
	Caracteristicas string                     `json:"caracteristicas"`
	EmpresaNIT      string                     `json:"empresa" validate:"required"`
	Precios         map[string]decimal.Decimal `json:"precios" validate:"required,min=1"`
}

// UpdateProductoRequest entrada para actualizar un producto. Campos nil no se tocan.
// No permite mover el producto de empresa.
type UpdateProductoRequest struct {
	Nombre          *string                    `json:"nombre"`
	Caracteristicas *string                    `json:"caracteristicas"`
	Precios         map[string]decimal.Decimal `json:"precios"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID              int64                      `json:"id"`
	Codigo          string                     `json:"codigo"`
	Nombre          string                     `json:"nombre"`
	Caracteristicas string                     `json:"caracteristicas"`
	EmpresaNIT      string                     `json:"empresa"`
	Precios         map[string]decimal.Decimal `json:"precios"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// ProductoListResponse listado paginado de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
