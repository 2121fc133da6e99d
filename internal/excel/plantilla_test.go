package excel

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del generador de plantilla
// ──────────────────────────────────────────────────────────────────────────────

func abrirLibro(t *testing.T, libro []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(libro))
	require.NoError(t, err, "la plantilla debe ser un XLSX legible")
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestGenerarPlantilla_Estructura(t *testing.T) {
	libro, err := GenerarPlantilla(nil)
	require.NoError(t, err)
	require.NotEmpty(t, libro)

	f := abrirLibro(t, libro)

	assert.Equal(t, HojaCarga, f.GetSheetName(0), "la hoja debe llamarse como la constante compartida")

	titulo, err := f.GetCellValue(HojaCarga, "B2")
	require.NoError(t, err)
	assert.Equal(t, "PLANTILLA DE CARGA MASIVA - LITE THINKING", titulo)

	// Encabezados en la fila 5, columnas A..E
	for i, esperado := range Encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, FilaEncabezado)
		valor, err := f.GetCellValue(HojaCarga, celda)
		require.NoError(t, err)
		assert.Equal(t, esperado, valor, "encabezado en %s", celda)
	}
}

func TestGenerarPlantilla_FilaEjemplo(t *testing.T) {
	libro, err := GenerarPlantilla(nil)
	require.NoError(t, err)

	f := abrirLibro(t, libro)

	codigo, _ := f.GetCellValue(HojaCarga, fmt.Sprintf("A%d", FilaEjemplo))
	nombre, _ := f.GetCellValue(HojaCarga, fmt.Sprintf("B%d", FilaEjemplo))
	moneda, _ := f.GetCellValue(HojaCarga, fmt.Sprintf("E%d", FilaEjemplo))

	assert.Equal(t, Ejemplo.Codigo, codigo)
	assert.Equal(t, Ejemplo.Nombre, nombre)
	assert.Equal(t, Ejemplo.Moneda, moneda)

	precio, err := f.GetCellValue(HojaCarga, fmt.Sprintf("D%d", FilaEjemplo), excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "150000", precio, "el precio de ejemplo debe ser el literal de muestra")
}

func TestGenerarPlantilla_Validaciones(t *testing.T) {
	libro, err := GenerarPlantilla(nil)
	require.NoError(t, err)

	f := abrirLibro(t, libro)

	dvs, err := f.GetDataValidations(HojaCarga)
	require.NoError(t, err)
	require.Len(t, dvs, 2, "debe haber validación de precio y de moneda")

	rangos := []string{dvs[0].Sqref, dvs[1].Sqref}
	assert.Contains(t, rangos, fmt.Sprintf("D%d:D%d", FilaEjemplo, FilaValidacionFin))
	assert.Contains(t, rangos, fmt.Sprintf("E%d:E%d", FilaEjemplo, FilaValidacionFin))
}

// Un logo ilegible no debe tumbar la generación: la imagen es decorativa.
func TestGenerarPlantilla_LogoInvalido_NoFalla(t *testing.T) {
	libro, err := GenerarPlantilla([]byte("esto no es un png"))
	require.NoError(t, err)

	f := abrirLibro(t, libro)
	assert.Equal(t, HojaCarga, f.GetSheetName(0))
}
