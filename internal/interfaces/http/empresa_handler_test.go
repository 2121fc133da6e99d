package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	apphttp "github.com/nicklcsdev/inventario-lite/internal/interfaces/http"
)

// empresasGrabadas implementa repository.EmpresaRepository y captura la
// paginación con la que el handler termina consultando.
type empresasGrabadas struct {
	limit  int
	offset int
}

func (r *empresasGrabadas) Create(*entity.Empresa) error { return nil }

func (r *empresasGrabadas) GetByNIT(string) (*entity.Empresa, error) { return nil, nil }

func (r *empresasGrabadas) Update(*entity.Empresa) error { return nil }

func (r *empresasGrabadas) Delete(string) error { return nil }

func (r *empresasGrabadas) List(limit, offset int) ([]*entity.Empresa, error) {
	r.limit = limit
	r.offset = offset
	return nil, nil
}

func buildEmpresaListApp(repo *empresasGrabadas) *fiber.App {
	h := apphttp.NewEmpresaHandler(usecase.NewEmpresaUseCase(repo))
	app := fiber.New()
	app.Get("/api/empresas", h.List)
	return app
}

// La paginación del listado se acota: limit fuera de rango cae al tope y los
// valores ausentes usan los defaults.
func TestEmpresaList_PaginacionAcotada(t *testing.T) {
	casos := []struct {
		nombre string
		query  string
		limit  int
		offset int
	}{
		{"defaults", "", 20, 0},
		{"tope", "?limit=500", 100, 0},
		{"negativo", "?limit=-3&offset=-9", 20, 0},
		{"valido", "?limit=50&offset=40", 50, 40},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			repo := &empresasGrabadas{}
			app := buildEmpresaListApp(repo)

			req := httptest.NewRequest(http.MethodGet, "/api/empresas"+c.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, c.limit, repo.limit)
			assert.Equal(t, c.offset, repo.offset)
		})
	}
}
