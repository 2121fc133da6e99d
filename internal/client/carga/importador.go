// Package carga ejecuta la fase de envío de la carga masiva: toma las filas ya
// validadas por el parser y las somete al servidor una por una, tolerando
// fallas parciales y armando el reporte por registro.
package carga

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/client/api"
	"github.com/nicklcsdev/inventario-lite/internal/excel"
)

// ErrSinDatos el archivo no produjo ninguna fila procesable.
var ErrSinDatos = errors.New("carga: el archivo no contiene filas con datos")

// Registro resultado individual de una fila en el reporte final.
type Registro struct {
	Fila    int    `json:"fila"`
	Mensaje string `json:"mensaje"`
	Tipo    string `json:"tipo"` // "success" | "error"
}

// Reporte resumen de la carga completa.
type Reporte struct {
	Exitosos  int        `json:"exitosos"`
	Fallidos  int        `json:"fallidos"`
	Registros []Registro `json:"registros"`
}

// RequiereRefresco indica si el inventario cambió y la vista debe recargarse.
// Basta un solo éxito: una carga con fallas parciales también mutó datos.
func (r *Reporte) RequiereRefresco() bool { return r.Exitosos > 0 }

// creadorProductos es lo único que el importador necesita de la pasarela API.
type creadorProductos interface {
	CrearProducto(ctx context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error)
}

// Importador envía filas validadas al servidor, estrictamente en secuencia.
type Importador struct {
	api creadorProductos
}

// NewImportador construye el importador sobre la pasarela API del cliente.
func NewImportador(api creadorProductos) *Importador {
	return &Importador{api: api}
}

// Procesar somete las filas en orden. Las filas que llegaron con error de
// validación se reportan sin tocar la red; las válidas se envían una a una y
// un fallo no detiene las siguientes. progreso (opcional) recibe el avance en
// porcentaje tras cada fila.
//
// El envío es secuencial a propósito: el orden del archivo es el orden de
// inserción, y el usuario ve avanzar la barra fila por fila.
//
// Si el contexto se cancela, devuelve el reporte parcial junto con ctx.Err().
func (imp *Importador) Procesar(ctx context.Context, filas []excel.Resultado, progreso func(pct int)) (*Reporte, error) {
	if len(filas) == 0 {
		return nil, ErrSinDatos
	}

	reporte := &Reporte{}
	total := len(filas)
	for i, fila := range filas {
		// La cancelación se revisa solo entre filas: una petición en vuelo
		// termina y queda contabilizada en el reporte parcial.
		select {
		case <-ctx.Done():
			return reporte, ctx.Err()
		default:
		}

		reporte.agregar(imp.procesarFila(ctx, fila))

		if progreso != nil {
			progreso(int(math.Round(float64(i+1) / float64(total) * 100)))
		}
	}

	log.Info().
		Int("exitosos", reporte.Exitosos).
		Int("fallidos", reporte.Fallidos).
		Msg("carga: importación terminada")
	return reporte, nil
}

func (imp *Importador) procesarFila(ctx context.Context, fila excel.Resultado) Registro {
	if fila.Error != "" {
		return Registro{Fila: fila.Fila, Mensaje: fila.Error, Tipo: "error"}
	}

	codigo := fila.Datos.Codigo
	if _, err := imp.api.CrearProducto(ctx, *fila.Datos); err != nil {
		mensaje := fmt.Sprintf("Error al guardar (%s)", codigo)
		if errors.Is(err, api.ErrCodigoDuplicado) {
			mensaje = fmt.Sprintf("Código ya existe (%s)", codigo)
		}
		log.Debug().Err(err).Int("fila", fila.Fila).Str("codigo", codigo).Msg("carga: fila rechazada")
		return Registro{Fila: fila.Fila, Mensaje: mensaje, Tipo: "error"}
	}
	return Registro{Fila: fila.Fila, Mensaje: fmt.Sprintf("Guardado (%s)", codigo), Tipo: "success"}
}

func (r *Reporte) agregar(reg Registro) {
	r.Registros = append(r.Registros, reg)
	if reg.Tipo == "error" {
		r.Fallidos++
	} else {
		r.Exitosos++
	}
}
