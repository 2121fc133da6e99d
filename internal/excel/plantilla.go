// Package excel implementa la plantilla de carga masiva de inventario y su
// parser de vuelta: el ciclo generar → diligenciar → validar fila por fila.
package excel

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Geometría de la hoja de carga. El parser y el generador comparten estas
// constantes: cambiar una sin la otra rompe el ciclo ida y vuelta.
const (
	// HojaCarga nombre de la única hoja de la plantilla.
	HojaCarga = "Carga Inventario"
	// FilaEncabezado fila (1-based) donde viven los títulos de columna.
	FilaEncabezado = 5
	// FilaEjemplo fila con el producto de ejemplo que el usuario debe reemplazar.
	FilaEjemplo = 6
	// FilaValidacionFin última fila cubierta por las validaciones nativas del libro.
	FilaValidacionFin = 100
)

// Encabezados títulos de columna de la plantilla, columnas A..E.
var Encabezados = []string{"CÓDIGO", "NOMBRE DEL PRODUCTO", "CARACTERÍSTICAS", "PRECIO", "MONEDA"}

// MonedasPermitidas monedas aceptadas en la columna E.
var MonedasPermitidas = []string{"COP", "USD", "EUR"}

// Ejemplo fila de muestra precargada en la plantilla. El parser la reconoce
// (código + nombre + precio literal) y la descarta en silencio.
var Ejemplo = struct {
	Codigo          string
	Nombre          string
	Caracteristicas string
	Precio          float64
	Moneda          string
}{
	Codigo:          "EJ-001",
	Nombre:          "Zapato Deportivo Lite",
	Caracteristicas: "Talla 40, Color Negro, Ergonómico",
	Precio:          150000,
	Moneda:          "COP",
}

const notaPlantilla = "Nota: Por favor reemplace el ejemplo o agregue filas nuevas hacia abajo. No modifique los encabezados."

// Colores del branding (hex RGB).
const (
	colorOscuro   = "0D0D0D"
	colorAmarillo = "E6C200"
)

// GenerarPlantilla arma el libro XLSX de carga masiva: título de marca, logo
// opcional, encabezados, fila de ejemplo y validaciones nativas de Excel
// (precio decimal > 0 y lista desplegable de monedas hasta la fila 100).
// logoPNG puede ser nil; si la imagen falla solo se registra una advertencia.
func GenerarPlantilla(logoPNG []byte) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), HojaCarga); err != nil {
		return nil, fmt.Errorf("plantilla: renombrar hoja: %w", err)
	}

	// Anchos de columna acordes al contenido esperado.
	_ = f.SetColWidth(HojaCarga, "A", "A", 20)
	_ = f.SetColWidth(HojaCarga, "B", "B", 35)
	_ = f.SetColWidth(HojaCarga, "C", "C", 45)
	_ = f.SetColWidth(HojaCarga, "D", "D", 20)
	_ = f.SetColWidth(HojaCarga, "E", "E", 15)

	if logoPNG != nil {
		err := f.AddPictureFromBytes(HojaCarga, "A1", &excelize.Picture{
			Extension: ".png",
			File:      logoPNG,
			Format:    &excelize.GraphicOptions{ScaleX: 0.5, ScaleY: 0.5},
		})
		if err != nil {
			log.Warn().Err(err).Msg("plantilla: no se pudo insertar el logo")
		}
	}

	if err := armarTitulo(f); err != nil {
		return nil, err
	}
	if err := armarEncabezados(f); err != nil {
		return nil, err
	}
	if err := armarFilaEjemplo(f); err != nil {
		return nil, err
	}
	if err := armarValidaciones(f); err != nil {
		return nil, err
	}

	if err := f.AddComment(HojaCarga, excelize.Comment{
		Cell:   fmt.Sprintf("B%d", FilaEjemplo+1),
		Author: "Lite Thinking",
		Paragraph: []excelize.RichTextRun{
			{Text: notaPlantilla},
		},
	}); err != nil {
		return nil, fmt.Errorf("plantilla: agregar nota: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("plantilla: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func armarTitulo(f *excelize.File) error {
	if err := f.MergeCell(HojaCarga, "B2", "E2"); err != nil {
		return fmt.Errorf("plantilla: combinar título: %w", err)
	}
	if err := f.SetCellValue(HojaCarga, "B2", "PLANTILLA DE CARGA MASIVA - LITE THINKING"); err != nil {
		return fmt.Errorf("plantilla: escribir título: %w", err)
	}
	estilo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: colorAmarillo},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorOscuro}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("plantilla: estilo de título: %w", err)
	}
	return f.SetCellStyle(HojaCarga, "B2", "E2", estilo)
}

func armarEncabezados(f *excelize.File) error {
	estilo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorOscuro}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("plantilla: estilo de encabezado: %w", err)
	}
	for i, titulo := range Encabezados {
		celda, err := excelize.CoordinatesToCellName(i+1, FilaEncabezado)
		if err != nil {
			return fmt.Errorf("plantilla: celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(HojaCarga, celda, titulo); err != nil {
			return fmt.Errorf("plantilla: escribir encabezado: %w", err)
		}
	}
	ini, _ := excelize.CoordinatesToCellName(1, FilaEncabezado)
	fin, _ := excelize.CoordinatesToCellName(len(Encabezados), FilaEncabezado)
	return f.SetCellStyle(HojaCarga, ini, fin, estilo)
}

func armarFilaEjemplo(f *excelize.File) error {
	valores := []interface{}{Ejemplo.Codigo, Ejemplo.Nombre, Ejemplo.Caracteristicas, Ejemplo.Precio, Ejemplo.Moneda}
	for i, v := range valores {
		celda, err := excelize.CoordinatesToCellName(i+1, FilaEjemplo)
		if err != nil {
			return fmt.Errorf("plantilla: celda de ejemplo: %w", err)
		}
		if err := f.SetCellValue(HojaCarga, celda, v); err != nil {
			return fmt.Errorf("plantilla: escribir ejemplo: %w", err)
		}
	}
	// Formato numérico con miles y dos decimales para la columna de precio.
	numFmt := "#,##0.00"
	estiloPrecio, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("plantilla: estilo de precio: %w", err)
	}
	iniD := fmt.Sprintf("D%d", FilaEjemplo)
	finD := fmt.Sprintf("D%d", FilaValidacionFin)
	return f.SetCellStyle(HojaCarga, iniD, finD, estiloPrecio)
}

// armarValidaciones agrega las validaciones nativas del libro. Son la primera
// línea de defensa en Excel; el parser revalida todo del lado del servidor.
func armarValidaciones(f *excelize.File) error {
	// D6:D100 → decimal estrictamente mayor a cero, estilo "stop".
	precio := excelize.NewDataValidation(true)
	precio.Sqref = fmt.Sprintf("D%d:D%d", FilaEjemplo, FilaValidacionFin)
	if err := precio.SetRange(0.0, 0.0, excelize.DataValidationTypeDecimal, excelize.DataValidationOperatorGreaterThan); err != nil {
		return fmt.Errorf("plantilla: rango de validación de precio: %w", err)
	}
	precio.SetError(excelize.DataValidationErrorStyleStop,
		"Precio Inválido", "El precio debe ser un número mayor a 0.")
	if err := f.AddDataValidation(HojaCarga, precio); err != nil {
		return fmt.Errorf("plantilla: validación de precio: %w", err)
	}

	// E6:E100 → lista desplegable de monedas, estilo "stop".
	moneda := excelize.NewDataValidation(true)
	moneda.Sqref = fmt.Sprintf("E%d:E%d", FilaEjemplo, FilaValidacionFin)
	if err := moneda.SetDropList(MonedasPermitidas); err != nil {
		return fmt.Errorf("plantilla: lista de monedas: %w", err)
	}
	moneda.SetError(excelize.DataValidationErrorStyleStop,
		"Moneda Inválida", "Seleccione una moneda válida de la lista (COP, USD, EUR).")
	if err := f.AddDataValidation(HojaCarga, moneda); err != nil {
		return fmt.Errorf("plantilla: validación de moneda: %w", err)
	}
	return nil
}
