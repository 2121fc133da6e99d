package excel

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const nitPrueba = "900123456"

// fila de datos para armar libros de prueba; Formula reemplaza al precio literal.
type filaPrueba struct {
	Codigo          string
	Nombre          string
	Caracteristicas string
	Precio          interface{}
	Formula         string
	Moneda          string
}

// libroConFilas parte de la plantilla real y agrega filas debajo del ejemplo:
// así el parser se prueba contra el mismo artefacto que recibe el usuario.
func libroConFilas(t *testing.T, filas ...filaPrueba) *bytes.Reader {
	t.Helper()
	base, err := GenerarPlantilla(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(base))
	require.NoError(t, err)
	defer f.Close()

	for i, fila := range filas {
		num := FilaEjemplo + 1 + i
		require.NoError(t, f.SetCellValue(HojaCarga, fmt.Sprintf("A%d", num), fila.Codigo))
		require.NoError(t, f.SetCellValue(HojaCarga, fmt.Sprintf("B%d", num), fila.Nombre))
		require.NoError(t, f.SetCellValue(HojaCarga, fmt.Sprintf("C%d", num), fila.Caracteristicas))
		if fila.Formula != "" {
			require.NoError(t, f.SetCellFormula(HojaCarga, fmt.Sprintf("D%d", num), fila.Formula))
		} else if fila.Precio != nil {
			require.NoError(t, f.SetCellValue(HojaCarga, fmt.Sprintf("D%d", num), fila.Precio))
		}
		require.NoError(t, f.SetCellValue(HojaCarga, fmt.Sprintf("E%d", num), fila.Moneda))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo plantilla → parser
// ──────────────────────────────────────────────────────────────────────────────

// La plantilla recién generada no aporta datos: la fila de ejemplo se descarta
// en silencio, sin aparecer ni como éxito ni como error.
func TestParsearInventario_PlantillaIntacta_SinResultados(t *testing.T) {
	resultados, err := ParsearInventario(libroConFilas(t), nitPrueba)
	require.NoError(t, err)
	assert.Empty(t, resultados, "la fila de ejemplo intacta no debe producir resultados")
}

func TestParsearInventario_FilaValida(t *testing.T) {
	r := libroConFilas(t, filaPrueba{
		Codigo: "P-100", Nombre: "Camisa Oxford", Caracteristicas: "Talla M, Azul",
		Precio: 45.5, Moneda: "usd",
	})

	resultados, err := ParsearInventario(r, nitPrueba)
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	res := resultados[0]
	assert.Equal(t, FilaEjemplo+1, res.Fila, "la fila reportada es la física del archivo")
	assert.Empty(t, res.Error)
	require.NotNil(t, res.Datos)
	assert.Equal(t, "P-100", res.Datos.Codigo)
	assert.Equal(t, "Camisa Oxford", res.Datos.Nombre)
	assert.Equal(t, nitPrueba, res.Datos.EmpresaNIT)

	precio, ok := res.Datos.Precios["USD"]
	require.True(t, ok, "la moneda se normaliza a mayúsculas")
	assert.True(t, precio.Equal(decimal.NewFromFloat(45.5)), "precio: %s", precio)
}

// Características y moneda vacías reciben sus valores por defecto.
func TestParsearInventario_Defaults(t *testing.T) {
	r := libroConFilas(t, filaPrueba{Codigo: "P-101", Nombre: "Gorra", Precio: 10000})

	resultados, err := ParsearInventario(r, nitPrueba)
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	require.NotNil(t, resultados[0].Datos)
	assert.Equal(t, "Sin descripción", resultados[0].Datos.Caracteristicas)
	_, ok := resultados[0].Datos.Precios["COP"]
	assert.True(t, ok, "sin moneda se asume COP")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación por fila: un error no detiene las demás
// ──────────────────────────────────────────────────────────────────────────────

func TestParsearInventario_ErroresNoDetienenElResto(t *testing.T) {
	r := libroConFilas(t,
		// sin nombre, precio negativo, moneda fuera de lista, válida, sin precio
		filaPrueba{Codigo: "P-1", Nombre: "", Precio: 100, Moneda: "COP"},
		filaPrueba{Codigo: "P-2", Nombre: "Mesa", Precio: -5, Moneda: "COP"},
		filaPrueba{Codigo: "P-3", Nombre: "Silla", Precio: 80, Moneda: "GBP"},
		filaPrueba{Codigo: "P-4", Nombre: "Lámpara", Precio: 120.99, Moneda: "EUR"},
		filaPrueba{Codigo: "P-5", Nombre: "Tapete", Moneda: "COP"},
	)

	resultados, err := ParsearInventario(r, nitPrueba)
	require.NoError(t, err)
	require.Len(t, resultados, 5)

	assert.Equal(t, "Faltan datos obligatorios (Código, Nombre o Precio)", resultados[0].Error)
	assert.Equal(t, "El precio debe ser un número mayor a 0", resultados[1].Error)
	assert.Equal(t, "Moneda 'GBP' no válida. Use COP, USD o EUR.", resultados[2].Error)
	assert.Empty(t, resultados[3].Error, "la fila válida pasa aunque las anteriores fallen")
	require.NotNil(t, resultados[3].Datos)
	assert.Equal(t, "P-4", resultados[3].Datos.Codigo)
	assert.Equal(t, "Faltan datos obligatorios (Código, Nombre o Precio)", resultados[4].Error)
}

// Frontera del precio: cero, negativo y texto no numérico se rechazan igual.
func TestParsearInventario_PreciosInvalidos(t *testing.T) {
	casos := []struct {
		nombre string
		precio interface{}
	}{
		{"cero", 0},
		{"negativo", -5},
		{"texto", "abc"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			r := libroConFilas(t, filaPrueba{Codigo: "P-9", Nombre: "Vaso", Precio: c.precio, Moneda: "COP"})

			resultados, err := ParsearInventario(r, nitPrueba)
			require.NoError(t, err)
			require.Len(t, resultados, 1)
			assert.Equal(t, "El precio debe ser un número mayor a 0", resultados[0].Error)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fórmulas
// ──────────────────────────────────────────────────────────────────────────────

// Un precio escrito como fórmula se resuelve antes de validar.
func TestParsearInventario_FormulaResuelta(t *testing.T) {
	r := libroConFilas(t, filaPrueba{Codigo: "P-F1", Nombre: "Combo", Formula: "=21/2", Moneda: "COP"})

	resultados, err := ParsearInventario(r, nitPrueba)
	require.NoError(t, err)
	require.Len(t, resultados, 1)

	require.Empty(t, resultados[0].Error)
	require.NotNil(t, resultados[0].Datos)
	precio := resultados[0].Datos.Precios["COP"]
	assert.True(t, precio.Equal(decimal.NewFromFloat(10.5)), "precio: %s", precio)
}

// La fila de ejemplo solo se descarta con el precio literal de muestra: si el
// usuario la reutilizó con una fórmula, es una fila suya y se procesa.
func TestParsearInventario_EjemploConFormula_SeProcesa(t *testing.T) {
	r := libroConFilas(t, filaPrueba{
		Codigo: Ejemplo.Codigo, Nombre: Ejemplo.Nombre,
		Formula: "=150000", Moneda: "COP",
	})

	resultados, err := ParsearInventario(r, nitPrueba)
	require.NoError(t, err)
	require.Len(t, resultados, 1, "una fórmula en el precio saca la fila del estatus de ejemplo")
	require.NotNil(t, resultados[0].Datos)
	assert.Equal(t, Ejemplo.Codigo, resultados[0].Datos.Codigo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de archivo
// ──────────────────────────────────────────────────────────────────────────────

func TestParsearInventario_ArchivoIlegible(t *testing.T) {
	_, err := ParsearInventario(bytes.NewReader([]byte("esto no es un xlsx")), nitPrueba)
	assert.Error(t, err)
}
