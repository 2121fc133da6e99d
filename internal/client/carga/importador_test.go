package carga

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/client/api"
	"github.com/nicklcsdev/inventario-lite/internal/excel"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// apiFalsa implementa creadorProductos guionado por código de producto.
type apiFalsa struct {
	llamadas []string
	// fallas mapea código -> error a devolver
	fallas map[string]error
}

func (f *apiFalsa) CrearProducto(_ context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	f.llamadas = append(f.llamadas, in.Codigo)
	if err, ok := f.fallas[in.Codigo]; ok {
		return nil, err
	}
	return &dto.ProductoResponse{Codigo: in.Codigo}, nil
}

func filaValida(fila int, codigo string) excel.Resultado {
	return excel.Resultado{
		Fila: fila,
		Datos: &dto.CreateProductoRequest{
			Codigo: codigo, Nombre: "Producto " + codigo, EmpresaNIT: "900123456",
			Precios: map[string]decimal.Decimal{"COP": decimal.NewFromInt(1000)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallas parciales
// ──────────────────────────────────────────────────────────────────────────────

// Una carga con duplicados y errores no se detiene: cada fila queda en el
// reporte y los éxitos parciales piden refresco de la vista.
func TestProcesar_FallasParciales(t *testing.T) {
	falsa := &apiFalsa{fallas: map[string]error{
		"P-2": api.ErrCodigoDuplicado,
		"P-4": errors.New("timeout"),
	}}
	imp := NewImportador(falsa)

	filas := []excel.Resultado{
		filaValida(7, "P-1"),
		filaValida(8, "P-2"),
		filaValida(9, "P-3"),
		filaValida(10, "P-4"),
		filaValida(11, "P-5"),
	}
	reporte, err := imp.Procesar(context.Background(), filas, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, reporte.Exitosos)
	assert.Equal(t, 2, reporte.Fallidos)
	assert.True(t, reporte.RequiereRefresco(), "hubo al menos un éxito: la vista debe recargarse")

	require.Len(t, reporte.Registros, 5)
	assert.Equal(t, "Código ya existe (P-2)", reporte.Registros[1].Mensaje)
	assert.Equal(t, "error", reporte.Registros[1].Tipo)
	assert.Equal(t, "Error al guardar (P-4)", reporte.Registros[3].Mensaje)
}

func TestProcesar_TodoFalla_NoPideRefresco(t *testing.T) {
	falsa := &apiFalsa{fallas: map[string]error{
		"P-1": errors.New("boom"),
		"P-2": errors.New("boom"),
	}}
	imp := NewImportador(falsa)

	reporte, err := imp.Procesar(context.Background(),
		[]excel.Resultado{filaValida(7, "P-1"), filaValida(8, "P-2")}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, reporte.Exitosos)
	assert.Equal(t, 2, reporte.Fallidos)
	assert.False(t, reporte.RequiereRefresco(), "sin éxitos el inventario no cambió")
}

// Las filas que el parser ya marcó con error se reportan sin tocar la red.
func TestProcesar_FilasInvalidas_NoTocanLaRed(t *testing.T) {
	falsa := &apiFalsa{}
	imp := NewImportador(falsa)

	filas := []excel.Resultado{
		{Fila: 7, Error: "Faltan datos obligatorios (Código, Nombre o Precio)"},
		{Fila: 8, Error: "El precio debe ser un número mayor a 0"},
		filaValida(9, "P-1"),
	}
	reporte, err := imp.Procesar(context.Background(), filas, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"P-1"}, falsa.llamadas, "solo la fila válida llega al servidor")
	assert.Equal(t, 1, reporte.Exitosos)
	assert.Equal(t, 2, reporte.Fallidos)
	assert.Equal(t, 7, reporte.Registros[0].Fila)
	assert.Equal(t, "Faltan datos obligatorios (Código, Nombre o Precio)", reporte.Registros[0].Mensaje)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden, progreso y cancelación
// ──────────────────────────────────────────────────────────────────────────────

// El envío es secuencial: el orden del archivo es el orden de inserción.
func TestProcesar_OrdenSecuencial(t *testing.T) {
	falsa := &apiFalsa{}
	imp := NewImportador(falsa)

	var filas []excel.Resultado
	var esperado []string
	for i := 0; i < 10; i++ {
		codigo := fmt.Sprintf("P-%02d", i)
		filas = append(filas, filaValida(7+i, codigo))
		esperado = append(esperado, codigo)
	}

	_, err := imp.Procesar(context.Background(), filas, nil)
	require.NoError(t, err)
	assert.Equal(t, esperado, falsa.llamadas)
}

func TestProcesar_ProgresoRedondeado(t *testing.T) {
	imp := NewImportador(&apiFalsa{})

	var avances []int
	filas := []excel.Resultado{filaValida(7, "P-1"), filaValida(8, "P-2"), filaValida(9, "P-3")}
	_, err := imp.Procesar(context.Background(), filas, func(pct int) { avances = append(avances, pct) })
	require.NoError(t, err)

	assert.Equal(t, []int{33, 67, 100}, avances)
}

func TestProcesar_SinDatos(t *testing.T) {
	imp := NewImportador(&apiFalsa{})

	_, err := imp.Procesar(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrSinDatos)
}

// La cancelación se respeta entre filas: devuelve el reporte parcial.
func TestProcesar_Cancelacion_DevuelveParcial(t *testing.T) {
	falsa := &apiFalsa{}
	imp := NewImportador(falsa)

	ctx, cancel := context.WithCancel(context.Background())
	filas := []excel.Resultado{filaValida(7, "P-1"), filaValida(8, "P-2"), filaValida(9, "P-3")}

	reporte, err := imp.Procesar(ctx, filas, func(pct int) {
		if pct >= 33 {
			cancel() // cancelar después de la primera fila
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, reporte, "el reporte parcial acompaña al error")
	assert.Equal(t, 1, reporte.Exitosos)
	assert.Equal(t, []string{"P-1"}, falsa.llamadas)
}
