package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/application/ports"
)

// aiTimeout límite interno para las llamadas al proveedor de IA.
const aiTimeout = 10 * time.Second

// AIUseCase casos de uso asistidos por IA: descripciones comerciales y
// dictado de productos por voz. No reintenta llamadas fallidas.
type AIUseCase struct {
	llm ports.LLMService
}

// NewAIUseCase construye el caso de uso.
func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// GenerarDescripcion genera una descripción comercial corta para el producto.
func (uc *AIUseCase) GenerarDescripcion(ctx context.Context, in dto.DescripcionRequest) (*dto.DescripcionResponse, error) {
	if in.Nombre == "" {
		return nil, fmt.Errorf("nombre es obligatorio")
	}
	caracteristicas := in.Caracteristicas
	if caracteristicas == "" {
		caracteristicas = "Genera una descripción comercial atractiva"
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	texto, err := uc.llm.GenerarDescripcion(ctx, in.Nombre, caracteristicas)
	if err != nil {
		return nil, err
	}
	return &dto.DescripcionResponse{Descripcion: texto}, nil
}

// TranscribirVoz convierte un dictado de audio en la adivinanza estructurada
// de un producto. El audio ya viene pre-filtrado por tamaño en el cliente.
func (uc *AIUseCase) TranscribirVoz(ctx context.Context, audio []byte, nombreArchivo string) (*dto.VozProductoDTO, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("audio es obligatorio")
	}

	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	return uc.llm.ExtraerProductoDeVoz(ctx, audio, nombreArchivo)
}
