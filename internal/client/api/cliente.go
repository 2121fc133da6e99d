// Package api es la pasarela HTTP del cliente hacia el servidor de inventario.
// Centraliza el token Bearer, la traducción de códigos de estado a errores del
// dominio y el teardown idempotente de la sesión cuando el servidor responde 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/client/session"
)

// RutaLoginExpirada destino de la navegación tras un 401 de sesión vencida.
const RutaLoginExpirada = "/login?expired=true"

// MinAudioBytes tamaño mínimo de un dictado de voz. Audios más cortos son
// clics accidentales del micrófono; se rechazan antes de gastar red.
const MinAudioBytes = 2048

// Errores centinela que el resto del cliente distingue.
var (
	// ErrSesionExpirada el servidor respondió 401 fuera del login; la sesión
	// local ya quedó desmontada cuando este error llega al llamador.
	ErrSesionExpirada = errors.New("api: sesión expirada")
	// ErrCredenciales el login falló por email/password incorrectos.
	ErrCredenciales = errors.New("api: credenciales inválidas")
	// ErrCodigoDuplicado el código de producto ya existe en la empresa (409).
	ErrCodigoDuplicado = errors.New("api: código de producto duplicado")
	// ErrAudioMuyCorto el dictado no alcanza MinAudioBytes.
	ErrAudioMuyCorto = errors.New("api: el audio es demasiado corto")
)

// Navegador abstrae la navegación del cliente (en la CLI, un mensaje y salida).
type Navegador func(ruta string)

// Cliente pasarela autenticada hacia la API.
type Cliente struct {
	baseURL string
	http    *http.Client
	sesion  *session.Store
	navegar Navegador

	// expirando garantiza que una ráfaga de 401 concurrentes desmonte la
	// sesión y navegue una sola vez. Se rearma cuando vuelve a haber sesión.
	expirando atomic.Bool
}

// New construye la pasarela. navegar puede ser nil (no se navega tras el 401,
// pero el teardown de sesión ocurre igual).
func New(baseURL string, sesion *session.Store, navegar Navegador) *Cliente {
	c := &Cliente{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		sesion:  sesion,
		navegar: navegar,
	}
	sesion.Suscribir(func(e session.Estado) {
		if e.Autenticado() {
			c.expirando.Store(false)
		}
	})
	return c
}

// ── Auth ─────────────────────────────────────────────────────────────────────

// Login autentica contra el servidor e instala la sesión local.
// Un 401 aquí significa credenciales malas, nunca sesión expirada: el
// teardown de sesión no aplica a la ruta de login.
func (c *Cliente) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out, true)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusUnauthorized {
			return nil, ErrCredenciales
		}
		return nil, err
	}
	if err := c.sesion.Login(out.Token, out.IsAdmin, out.Email); err != nil {
		return nil, err
	}
	return &out, nil
}

// Registrar crea un usuario nuevo.
func (c *Cliente) Registrar(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Empresas ─────────────────────────────────────────────────────────────────

// ListarEmpresas lista las empresas registradas.
func (c *Cliente) ListarEmpresas(ctx context.Context) (*dto.EmpresaListResponse, error) {
	var out dto.EmpresaListResponse
	if err := c.do(ctx, http.MethodGet, "/empresas/", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// CrearEmpresa registra una empresa nueva.
func (c *Cliente) CrearEmpresa(ctx context.Context, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	var out dto.EmpresaResponse
	if err := c.do(ctx, http.MethodPost, "/empresas/", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActualizarEmpresa edita nombre, dirección o teléfono. El NIT no cambia.
func (c *Cliente) ActualizarEmpresa(ctx context.Context, nit string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	var out dto.EmpresaResponse
	if err := c.do(ctx, http.MethodPut, "/empresas/"+url.PathEscape(nit), in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// EliminarEmpresa borra la empresa y sus productos.
func (c *Cliente) EliminarEmpresa(ctx context.Context, nit string) error {
	return c.do(ctx, http.MethodDelete, "/empresas/"+url.PathEscape(nit), nil, nil, false)
}

// ── Productos ────────────────────────────────────────────────────────────────

// ListarProductos lista productos; nit vacío = todas las empresas.
func (c *Cliente) ListarProductos(ctx context.Context, nit string) (*dto.ProductoListResponse, error) {
	path := "/productos/"
	if nit != "" {
		path += "?empresa=" + url.QueryEscape(nit)
	}
	var out dto.ProductoListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// CrearProducto registra un producto. Un código repetido dentro de la empresa
// devuelve ErrCodigoDuplicado; la carga masiva depende de esa distinción.
func (c *Cliente) CrearProducto(ctx context.Context, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	var out dto.ProductoResponse
	err := c.do(ctx, http.MethodPost, "/productos/", in, &out, false)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusConflict {
			return nil, ErrCodigoDuplicado
		}
		return nil, err
	}
	return &out, nil
}

// EliminarProducto borra un producto por ID.
func (c *Cliente) EliminarProducto(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/productos/"+strconv.FormatInt(id, 10), nil, nil, false)
}

// ── IA ───────────────────────────────────────────────────────────────────────

// GenerarDescripcion pide al servidor una descripción comercial generada por IA.
func (c *Cliente) GenerarDescripcion(ctx context.Context, in dto.DescripcionRequest) (*dto.DescripcionResponse, error) {
	var out dto.DescripcionResponse
	if err := c.do(ctx, http.MethodPost, "/ai/descripcion", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// TranscribirVoz sube un dictado de voz y devuelve el producto extraído.
// Filtra audios diminutos antes de tocar la red.
func (c *Cliente) TranscribirVoz(ctx context.Context, audio []byte, nombreArchivo string) (*dto.VozProductoDTO, error) {
	if len(audio) < MinAudioBytes {
		return nil, ErrAudioMuyCorto
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio", nombreArchivo)
	if err != nil {
		return nil, fmt.Errorf("api: armar multipart: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return nil, fmt.Errorf("api: escribir audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("api: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/voz", &buf)
	if err != nil {
		return nil, fmt.Errorf("api: crear request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out dto.VozProductoDTO
	if err := c.enviar(req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// DescargarReportePDF descarga el reporte de inventario; nit vacío = todas.
func (c *Cliente) DescargarReportePDF(ctx context.Context, nit string) ([]byte, error) {
	path := "/reportes/descargar"
	if nit != "" {
		path += "?nit=" + url.QueryEscape(nit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("api: crear request: %w", err)
	}
	var pdf []byte
	if err := c.enviarCrudo(req, &pdf, false); err != nil {
		return nil, err
	}
	return pdf, nil
}

// EnviarReporteEmail pide al servidor enviar el reporte PDF al destinatario.
func (c *Cliente) EnviarReporteEmail(ctx context.Context, email, nit string) error {
	in := dto.EnviarReporteRequest{Email: email, NIT: nit}
	return c.do(ctx, http.MethodPost, "/reportes/enviar", in, nil, false)
}

// ── Transporte ───────────────────────────────────────────────────────────────

// statusError respuesta HTTP no exitosa, con el cuerpo de error del servidor.
type statusError struct {
	code int
	body dto.ErrorResponse
}

func (e *statusError) Error() string {
	if e.body.Message != "" {
		return fmt.Sprintf("api: HTTP %d: %s", e.code, e.body.Message)
	}
	return fmt.Sprintf("api: HTTP %d", e.code)
}

// do serializa el body como JSON, ejecuta y deserializa la respuesta en out.
func (c *Cliente) do(ctx context.Context, method, path string, body, out interface{}, esLogin bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: crear request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.enviar(req, out, esLogin)
}

// enviar ejecuta la petición y deserializa JSON en out (out nil descarta el cuerpo).
func (c *Cliente) enviar(req *http.Request, out interface{}, esLogin bool) error {
	var raw []byte
	if err := c.enviarCrudo(req, &raw, esLogin); err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: deserializar respuesta: %w", err)
	}
	return nil
}

// enviarCrudo ejecuta la petición con el token Bearer y aplica la política de
// 401: cualquier 401 fuera del login desmonta la sesión local exactamente una
// vez y navega al login con la marca de expiración.
func (c *Cliente) enviarCrudo(req *http.Request, out *[]byte, esLogin bool) error {
	if estado := c.sesion.Estado(); estado.Autenticado() {
		req.Header.Set("Authorization", "Bearer "+estado.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: leer respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !esLogin {
		c.expirar()
		return ErrSesionExpirada
	}
	if resp.StatusCode >= 400 {
		se := &statusError{code: resp.StatusCode}
		_ = json.Unmarshal(raw, &se.body)
		return se
	}
	*out = raw
	return nil
}

// expirar desmonta la sesión tras un 401. El CompareAndSwap garantiza que una
// ráfaga de peticiones concurrentes rechazadas produzca un solo teardown y una
// sola navegación; el guard se rearma cuando el store vuelve a autenticarse.
func (c *Cliente) expirar() {
	if !c.expirando.CompareAndSwap(false, true) {
		return
	}
	log.Warn().Msg("api: sesión expirada, desmontando sesión local")
	if err := c.sesion.Logout(); err != nil {
		log.Error().Err(err).Msg("api: fallo al desmontar la sesión")
	}
	if c.navegar != nil {
		c.navegar(RutaLoginExpirada)
	}
}
