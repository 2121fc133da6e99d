package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas aceptadas en el formulario interactivo. La carga masiva por Excel
// usa un subconjunto más estricto (ver internal/excel.MonedasPermitidas).
const (
	MonedaCOP = "COP"
	MonedaUSD = "USD"
	MonedaEUR = "EUR"
)

// Precios mapea código de moneda -> valor. Se persiste como JSONB.
// El orden de inserción es irrelevante; todo valor debe ser > 0.
type Precios map[string]decimal.Decimal

// Validos verifica que todos los montos sean estrictamente mayores a 0.
func (p Precios) Validos() bool {
	for _, v := range p {
		if !v.IsPositive() {
			return false
		}
	}
	return true
}

// Producto representa un artículo del catálogo de una empresa.
// Codigo es único dentro de la empresa (constraint en DB); el ID lo asigna
// el servidor al crear.
type Producto struct {
	ID              int64
	Codigo          string
	Nombre          string
	Caracteristicas string
	EmpresaNIT      string
	Precios         Precios
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
