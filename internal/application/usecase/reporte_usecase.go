package usecase

import (
	"context"
	"fmt"

	"github.com/nicklcsdev/inventario-lite/internal/application/ports"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	"github.com/nicklcsdev/inventario-lite/internal/domain/repository"
)

// maxProductosReporte tope de filas en un reporte (un PDF no pagina miles de items).
const maxProductosReporte = 1000

// ReporteUseCase genera el reporte PDF del inventario y lo envía por correo.
type ReporteUseCase struct {
	productoRepo repository.ProductoRepository
	empresaRepo  repository.EmpresaRepository
	generator    ports.ReportePDFGenerator
	mailer       ports.ReporteMailer
}

// NewReporteUseCase construye el caso de uso. mailer puede ser nil si el
// servidor no tiene SMTP configurado (el envío devolverá error descriptivo).
func NewReporteUseCase(
	productoRepo repository.ProductoRepository,
	empresaRepo repository.EmpresaRepository,
	generator ports.ReportePDFGenerator,
	mailer ports.ReporteMailer,
) *ReporteUseCase {
	return &ReporteUseCase{
		productoRepo: productoRepo,
		empresaRepo:  empresaRepo,
		generator:    generator,
		mailer:       mailer,
	}
}

// GenerarPDF arma el reporte de inventario. nit vacío = todos los productos.
func (uc *ReporteUseCase) GenerarPDF(ctx context.Context, nit string) ([]byte, error) {
	var (
		empresa   *entity.Empresa
		productos []*entity.Producto
		err       error
	)
	if nit != "" {
		empresa, err = uc.empresaRepo.GetByNIT(nit)
		if err != nil {
			return nil, err
		}
		if empresa == nil {
			return nil, domain.ErrNotFound
		}
		productos, err = uc.productoRepo.ListByEmpresa(nit, maxProductosReporte, 0)
	} else {
		productos, err = uc.productoRepo.List(maxProductosReporte, 0)
	}
	if err != nil {
		return nil, err
	}
	totales, err := uc.productoRepo.TotalesPorMoneda(nit)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerarReporteInventario(ctx, empresa, productos, totales)
}

// EnviarPorEmail genera el PDF y lo envía como adjunto al destinatario.
func (uc *ReporteUseCase) EnviarPorEmail(ctx context.Context, email, nit string) error {
	if uc.mailer == nil {
		return fmt.Errorf("reporte: SMTP no configurado")
	}
	pdf, err := uc.GenerarPDF(ctx, nit)
	if err != nil {
		return err
	}
	asunto := "Reporte de Inventario - Lite Thinking"
	return uc.mailer.EnviarReporte(ctx, email, asunto, pdf, "inventario_reporte.pdf")
}
