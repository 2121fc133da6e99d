package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklcsdev/inventario-lite/internal/application/auth"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	apphttp "github.com/nicklcsdev/inventario-lite/internal/interfaces/http"
	pkgjwt "github.com/nicklcsdev/inventario-lite/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// usuariosEnMemoria implementa repository.UserRepository sobre un mapa.
type usuariosEnMemoria struct {
	porEmail map[string]*entity.Usuario
}

func nuevosUsuariosEnMemoria() *usuariosEnMemoria {
	return &usuariosEnMemoria{porEmail: map[string]*entity.Usuario{}}
}

func (r *usuariosEnMemoria) Create(user *entity.Usuario) error {
	r.porEmail[user.Email] = user
	return nil
}

func (r *usuariosEnMemoria) FindByEmail(email string) (*entity.Usuario, error) {
	return r.porEmail[email], nil
}

// buildAuthApp monta las rutas públicas de auth sobre el repo en memoria.
func buildAuthApp(repo *usuariosEnMemoria) *fiber.App {
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	h := apphttp.NewAuthHandler(uc)

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, ruta, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, ruta, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro público: el rol no se negocia
// ──────────────────────────────────────────────────────────────────────────────

// Un anónimo que manda "rol": "admin" en el registro queda igual como externo:
// el endpoint público nunca entrega privilegios de escritura.
func TestRegister_RolDelCuerpoSeIgnora(t *testing.T) {
	repo := nuevosUsuariosEnMemoria()
	app := buildAuthApp(repo)

	resp := postJSON(t, app, "/api/auth/register",
		`{"email":"intruso@litethinking.test","password":"supersecreta","nombre":"Intruso","rol":"admin"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, entity.RolExterno, body["rol"], "la respuesta debe reflejar el rol externo")

	user := repo.porEmail["intruso@litethinking.test"]
	require.NotNil(t, user)
	assert.Equal(t, entity.RolExterno, user.Rol, "el usuario persistido debe ser externo")
	assert.False(t, user.EsAdmin())
}

// El login de un usuario auto-registrado emite un token sin rol admin:
// is_admin=false y claim de rol "externo", así RequireAdmin lo rechaza.
func TestRegister_LoginPosteriorNoEsAdmin(t *testing.T) {
	repo := nuevosUsuariosEnMemoria()
	app := buildAuthApp(repo)

	resp := postJSON(t, app, "/api/auth/register",
		`{"email":"nuevo@litethinking.test","password":"supersecreta","rol":"admin"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/login",
		`{"email":"nuevo@litethinking.test","password":"supersecreta"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token   string `json:"access"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	assert.False(t, login.IsAdmin, "un auto-registrado nunca es admin")

	_, _, role, err := pkgjwt.Parse(testJWTSecret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RolExterno, role, "el claim de rol del JWT debe ser externo")
}

func TestRegister_EmailDuplicado_Retorna409(t *testing.T) {
	repo := nuevosUsuariosEnMemoria()
	app := buildAuthApp(repo)

	resp := postJSON(t, app, "/api/auth/register",
		`{"email":"uno@litethinking.test","password":"supersecreta"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/auth/register",
		`{"email":"uno@litethinking.test","password":"otraclave123"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
