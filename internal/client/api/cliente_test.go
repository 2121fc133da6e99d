package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/client/api"
	"github.com/nicklcsdev/inventario-lite/internal/client/session"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	tokenValido = "tok-valido"
	emailAdmin  = "admin@litethinking.test"
	passwordOK  = "clave-correcta"
)

type entorno struct {
	servidor     *httptest.Server
	sesion       *session.Store
	cliente      *api.Cliente
	navegaciones atomic.Int32
	ultimaRuta   atomic.Value

	// rechazar401 fuerza 401 en toda ruta protegida.
	rechazar401 atomic.Bool
	peticiones  atomic.Int32
}

// nuevoEntorno levanta un servidor de prueba con login y rutas protegidas.
func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	e := &entorno{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		e.peticiones.Add(1)
		var in dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Email != emailAdmin || in.Password != passwordOK {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
			return
		}
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: tokenValido, IsAdmin: true, Email: in.Email})
	})
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		e.peticiones.Add(1)
		if e.rechazar401.Load() || r.Header.Get("Authorization") != "Bearer "+tokenValido {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			return
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/productos/":
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Code: "DUPLICATE", Message: "código ya existe en esta empresa"})
		default:
			_ = json.NewEncoder(w).Encode(dto.EmpresaListResponse{})
		}
	})

	e.servidor = httptest.NewServer(mux)
	t.Cleanup(e.servidor.Close)

	e.sesion = session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, e.sesion.Restaurar())

	e.cliente = api.New(e.servidor.URL+"/api", e.sesion, func(ruta string) {
		e.navegaciones.Add(1)
		e.ultimaRuta.Store(ruta)
	})
	return e
}

func (e *entorno) autenticar(t *testing.T) {
	t.Helper()
	_, err := e.cliente.Login(context.Background(), emailAdmin, passwordOK)
	require.NoError(t, err)
	require.True(t, e.sesion.Estado().Autenticado())
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_InstalaSesionYAdjuntaToken(t *testing.T) {
	e := nuevoEntorno(t)

	out, err := e.cliente.Login(context.Background(), emailAdmin, passwordOK)
	require.NoError(t, err)
	assert.True(t, out.IsAdmin)

	estado := e.sesion.Estado()
	assert.Equal(t, tokenValido, estado.Token)
	assert.Equal(t, emailAdmin, estado.Identidad)

	// La siguiente petición viaja con el Bearer: el servidor la acepta.
	_, err = e.cliente.ListarEmpresas(context.Background())
	assert.NoError(t, err)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.cliente.Login(context.Background(), emailAdmin, "clave-mala")
	assert.ErrorIs(t, err, api.ErrCredenciales)
	assert.False(t, e.sesion.Estado().Autenticado())
	assert.Zero(t, e.navegaciones.Load(), "un 401 de login nunca dispara el teardown")
}

// Un 401 en el login no debe desmontar una sesión existente: son credenciales
// malas del intento, no una sesión vencida.
func TestLogin_401NoDesmontaSesionActiva(t *testing.T) {
	e := nuevoEntorno(t)
	e.autenticar(t)

	_, err := e.cliente.Login(context.Background(), emailAdmin, "clave-mala")
	assert.ErrorIs(t, err, api.ErrCredenciales)
	assert.True(t, e.sesion.Estado().Autenticado(), "la sesión previa sigue viva")
	assert.Zero(t, e.navegaciones.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Expiración de sesión: teardown idempotente
// ──────────────────────────────────────────────────────────────────────────────

func TestSesionExpirada_DesmontaYNavega(t *testing.T) {
	e := nuevoEntorno(t)
	e.autenticar(t)
	e.rechazar401.Store(true)

	_, err := e.cliente.ListarEmpresas(context.Background())
	assert.ErrorIs(t, err, api.ErrSesionExpirada)

	assert.False(t, e.sesion.Estado().Autenticado(), "el 401 desmonta la sesión local")
	assert.Equal(t, int32(1), e.navegaciones.Load())
	assert.Equal(t, api.RutaLoginExpirada, e.ultimaRuta.Load())
}

// Ráfaga de peticiones concurrentes rechazadas: todas reciben el error de
// sesión expirada, pero el teardown y la navegación ocurren una sola vez.
func TestSesionExpirada_RafagaConcurrente_UnSoloTeardown(t *testing.T) {
	e := nuevoEntorno(t)
	e.autenticar(t)
	e.rechazar401.Store(true)

	const concurrencia = 8
	var wg sync.WaitGroup
	errores := make([]error, concurrencia)
	for i := 0; i < concurrencia; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errores[i] = e.cliente.ListarEmpresas(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errores {
		assert.ErrorIs(t, err, api.ErrSesionExpirada, "petición %d", i)
	}
	assert.Equal(t, int32(1), e.navegaciones.Load(), "una sola navegación para toda la ráfaga")
	assert.False(t, e.sesion.Estado().Autenticado())
}

// Tras volver a iniciar sesión, el guard se rearma: una nueva expiración
// vuelve a desmontar y navegar.
func TestSesionExpirada_GuardSeRearmaTrasNuevoLogin(t *testing.T) {
	e := nuevoEntorno(t)
	e.autenticar(t)

	e.rechazar401.Store(true)
	_, err := e.cliente.ListarEmpresas(context.Background())
	require.ErrorIs(t, err, api.ErrSesionExpirada)
	require.Equal(t, int32(1), e.navegaciones.Load())

	e.rechazar401.Store(false)
	e.autenticar(t)

	e.rechazar401.Store(true)
	_, err = e.cliente.ListarEmpresas(context.Background())
	require.ErrorIs(t, err, api.ErrSesionExpirada)
	assert.Equal(t, int32(2), e.navegaciones.Load(), "cada expiración real navega una vez")
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de códigos de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearProducto_DuplicadoSeTraduce(t *testing.T) {
	e := nuevoEntorno(t)
	e.autenticar(t)

	_, err := e.cliente.CrearProducto(context.Background(), dto.CreateProductoRequest{
		Codigo: "P-1", Nombre: "Mesa", EmpresaNIT: "900123456",
		Precios: map[string]decimal.Decimal{"COP": decimal.NewFromInt(100)},
	})
	assert.ErrorIs(t, err, api.ErrCodigoDuplicado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pre-filtro de audio
// ──────────────────────────────────────────────────────────────────────────────

func TestTranscribirVoz_AudioCorto_NoTocaLaRed(t *testing.T) {
	e := nuevoEntorno(t)
	e.autenticar(t)
	antes := e.peticiones.Load()

	_, err := e.cliente.TranscribirVoz(context.Background(), make([]byte, api.MinAudioBytes-1), "corto.webm")
	assert.ErrorIs(t, err, api.ErrAudioMuyCorto)
	assert.Equal(t, antes, e.peticiones.Load(), "el audio corto se rechaza sin petición")
}
