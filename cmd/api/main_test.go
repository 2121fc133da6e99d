package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger necesita el spec en disco al arrancar; este test
// fija que el archivo viaja con el repo y declara las rutas que monta el router.
func TestSwaggerSpec_ExisteYCubreLasRutas(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json debe existir en el árbol")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec), "el spec debe ser JSON válido")
	assert.Equal(t, "2.0", spec.Swagger)

	rutas := []string{
		"/health",
		"/api/auth/register",
		"/api/auth/login",
		"/api/empresas",
		"/api/empresas/{nit}",
		"/api/productos",
		"/api/productos/{id}",
		"/api/ai/descripcion",
		"/api/ai/voz",
		"/api/reportes/descargar",
		"/api/reportes/enviar",
	}
	for _, ruta := range rutas {
		assert.Contains(t, spec.Paths, ruta, "el spec debe documentar %s", ruta)
	}
}
