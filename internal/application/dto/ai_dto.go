package dto

import "github.com/shopspring/decimal"

// DescripcionRequest entrada para generar una descripción comercial con IA.
type DescripcionRequest struct {
	Nombre          string `json:"nombre" validate:"required,max=255"`
	Caracteristicas string `json:"caracteristicas"`
}

// DescripcionResponse salida con el texto generado.
type DescripcionResponse struct {
	Descripcion string `json:"descripcion"`
}

// VozProductoDTO adivinanza estructurada extraída de un dictado de voz.
// Campos no reconocidos llegan vacíos; Precio cero significa "no detectado".
type VozProductoDTO struct {
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	Caracteristicas string          `json:"caracteristicas"`
	Moneda          string          `json:"moneda"`
	Precio          decimal.Decimal `json:"precio"`
}
