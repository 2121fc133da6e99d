package ports

import (
	"context"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
)

// LLMService puerto hacia el proveedor de IA. El modelo detrás es opaco para
// la aplicación: se le pide texto (descripciones) o la extracción estructurada
// de un dictado de voz. Las llamadas son falibles y no se reintentan.
type LLMService interface {
	// GenerarDescripcion crea una descripción comercial corta para el producto.
	GenerarDescripcion(ctx context.Context, nombre, caracteristicas string) (string, error)

	// ExtraerProductoDeVoz transcribe el audio y devuelve la mejor adivinanza
	// de {codigo, nombre, caracteristicas, moneda, precio}.
	ExtraerProductoDeVoz(ctx context.Context, audio []byte, nombreArchivo string) (*dto.VozProductoDTO, error)
}
