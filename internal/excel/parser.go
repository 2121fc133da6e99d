package excel

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
)

// Resultado es la salida del parser para una fila diligenciada: o bien el
// producto listo para enviar, o bien el mensaje de error de validación.
// Fila es el número físico (1-based) en la hoja, para que el reporte de la
// carga masiva le hable al usuario en coordenadas de su propio archivo.
type Resultado struct {
	Fila  int
	Datos *dto.CreateProductoRequest
	Error string
}

// Mensajes de validación por fila. El importador los muestra tal cual.
const (
	errFaltanDatos   = "Faltan datos obligatorios (Código, Nombre o Precio)"
	errPrecioInvalid = "El precio debe ser un número mayor a 0"
)

// ParsearInventario lee el libro diligenciado y valida fila por fila.
//
// Reglas:
//   - Filas sin código (columna A vacía) y la fila de encabezados se ignoran.
//   - La fila de ejemplo intacta (código, nombre y precio literal de muestra)
//     se descarta en silencio; si el usuario la editó, se procesa normal.
//   - Un precio escrito como fórmula se resuelve antes de validar.
//   - Una fila inválida no detiene el resto: cada una produce su Resultado.
//
// Solo devuelve error cuando el archivo entero es ilegible o no tiene hojas.
func ParsearInventario(r io.Reader, empresaNIT string) ([]Resultado, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir libro: %w", err)
	}
	defer f.Close()

	hoja := HojaCarga
	if idx, _ := f.GetSheetIndex(HojaCarga); idx < 0 {
		hoja = f.GetSheetName(0)
		if hoja == "" {
			return nil, fmt.Errorf("excel: el libro no contiene hojas")
		}
	}

	filas, err := f.GetRows(hoja, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("excel: leer filas: %w", err)
	}

	var resultados []Resultado
	for i, fila := range filas {
		numFila := i + 1

		codigo := strings.TrimSpace(celda(fila, 0))
		if codigo == "" {
			continue
		}
		if sinAcentos(strings.ToUpper(codigo)) == "CODIGO" {
			continue
		}

		nombre := strings.TrimSpace(celda(fila, 1))
		caracteristicas := strings.TrimSpace(celda(fila, 2))
		precioCrudo := strings.TrimSpace(celda(fila, 3))
		monedaCruda := strings.TrimSpace(celda(fila, 4))

		celdaPrecio, err := excelize.CoordinatesToCellName(4, numFila)
		if err != nil {
			return nil, fmt.Errorf("excel: coordenada de precio: %w", err)
		}
		formula, _ := f.GetCellFormula(hoja, celdaPrecio)

		// La fila de ejemplo se reconoce antes de validar datos faltantes:
		// solo cuenta si el precio sigue siendo el literal de muestra (una
		// fórmula significa que el usuario la reutilizó).
		if codigo == Ejemplo.Codigo && nombre == Ejemplo.Nombre && formula == "" {
			if v, err := decimal.NewFromString(precioCrudo); err == nil && v.Equal(decimal.NewFromFloat(Ejemplo.Precio)) {
				continue
			}
		}

		precioTexto := precioCrudo
		if formula != "" {
			precioTexto, err = f.CalcCellValue(hoja, celdaPrecio)
			if err != nil {
				resultados = append(resultados, Resultado{Fila: numFila, Error: errPrecioInvalid})
				continue
			}
			precioTexto = strings.TrimSpace(precioTexto)
		}

		if nombre == "" || precioTexto == "" {
			resultados = append(resultados, Resultado{Fila: numFila, Error: errFaltanDatos})
			continue
		}

		precio, err := decimal.NewFromString(precioTexto)
		if err != nil || !precio.IsPositive() {
			resultados = append(resultados, Resultado{Fila: numFila, Error: errPrecioInvalid})
			continue
		}

		moneda := strings.ToUpper(monedaCruda)
		if moneda == "" {
			moneda = "COP"
		}
		if !monedaPermitida(moneda) {
			resultados = append(resultados, Resultado{
				Fila:  numFila,
				Error: fmt.Sprintf("Moneda '%s' no válida. Use COP, USD o EUR.", moneda),
			})
			continue
		}

		if caracteristicas == "" {
			caracteristicas = "Sin descripción"
		}

		resultados = append(resultados, Resultado{
			Fila: numFila,
			Datos: &dto.CreateProductoRequest{
				Codigo:          codigo,
				Nombre:          nombre,
				Caracteristicas: caracteristicas,
				EmpresaNIT:      empresaNIT,
				Precios:         map[string]decimal.Decimal{moneda: precio},
			},
		})
	}
	return resultados, nil
}

// celda devuelve el valor de la columna idx (0-based) tolerando filas cortas.
func celda(fila []string, idx int) string {
	if idx >= len(fila) {
		return ""
	}
	return fila[idx]
}

func monedaPermitida(moneda string) bool {
	for _, m := range MonedasPermitidas {
		if moneda == m {
			return true
		}
	}
	return false
}

// sinAcentos elimina las marcas diacríticas para comparar encabezados
// ("CÓDIGO" y "CODIGO" son el mismo título).
func sinAcentos(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
