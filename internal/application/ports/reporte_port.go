package ports

import (
	"context"

	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
)

// ReportePDFGenerator puerto para la generación del reporte de inventario.
// empresa puede ser nil cuando el reporte no está acotado a un solo tenant;
// totales trae el valor del inventario agrupado por moneda.
type ReportePDFGenerator interface {
	GenerarReporteInventario(ctx context.Context, empresa *entity.Empresa, productos []*entity.Producto, totales entity.Precios) ([]byte, error)
}

// ReporteMailer puerto para el envío del reporte por correo.
type ReporteMailer interface {
	EnviarReporte(ctx context.Context, destinatario, asunto string, pdf []byte, nombreArchivo string) error
}
