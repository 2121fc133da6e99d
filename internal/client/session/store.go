// Package session mantiene la sesión del cliente: token, bandera de rol e
// identidad, con persistencia en disco para sobrevivir reinicios del proceso.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Estado es la foto inmutable de la sesión en un instante.
// Cargando es true solo durante el arranque, antes de Restaurar: el gate de
// autorización lo usa para no redirigir con información a medias.
type Estado struct {
	Token     string `json:"token"`
	EsAdmin   bool   `json:"is_admin"`
	Identidad string `json:"email"`
	Cargando  bool   `json:"-"`
}

// Autenticado indica si hay una sesión activa.
func (e Estado) Autenticado() bool { return e.Token != "" }

// Store guarda el estado de sesión y lo persiste como JSON en disco.
// Es seguro para uso concurrente; los suscriptores reciben cada transición.
type Store struct {
	mu     sync.RWMutex
	path   string
	estado Estado
	subs   []func(Estado)
}

// NewStore construye el store. El estado arranca en Cargando hasta Restaurar.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		estado: Estado{Cargando: true},
	}
}

// Estado devuelve la foto actual de la sesión.
func (s *Store) Estado() Estado {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estado
}

// Suscribir registra un observador que recibe cada cambio de estado.
// El observador se invoca fuera del lock, con la foto ya tomada.
func (s *Store) Suscribir(fn func(Estado)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Restaurar carga la sesión persistida. Un archivo inexistente no es error:
// simplemente se arranca sin sesión. Siempre apaga la bandera Cargando.
func (s *Store) Restaurar() error {
	var restaurado Estado
	raw, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &restaurado); err != nil {
			log.Warn().Err(err).Str("path", s.path).Msg("sesión: archivo corrupto, se descarta")
			restaurado = Estado{}
		}
	case errors.Is(err, os.ErrNotExist):
		// primera ejecución
	default:
		return fmt.Errorf("sesión: leer %s: %w", s.path, err)
	}
	restaurado.Cargando = false
	s.cambiar(restaurado)
	return nil
}

// Login instala la sesión autenticada y la persiste.
func (s *Store) Login(token string, esAdmin bool, identidad string) error {
	nuevo := Estado{Token: token, EsAdmin: esAdmin, Identidad: identidad}
	if err := s.persistir(nuevo); err != nil {
		return err
	}
	s.cambiar(nuevo)
	return nil
}

// Logout limpia la sesión. Es idempotente: si ya no hay sesión no persiste
// ni notifica de nuevo, así un segundo teardown concurrente es inocuo.
func (s *Store) Logout() error {
	s.mu.RLock()
	yaLimpio := !s.estado.Autenticado() && !s.estado.Cargando
	s.mu.RUnlock()
	if yaLimpio {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("sesión: borrar %s: %w", s.path, err)
	}
	s.cambiar(Estado{})
	return nil
}

func (s *Store) persistir(e Estado) error {
	raw, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("sesión: serializar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("sesión: crear directorio: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("sesión: escribir %s: %w", s.path, err)
	}
	return nil
}

// cambiar instala el nuevo estado y notifica a los suscriptores sin el lock.
func (s *Store) cambiar(nuevo Estado) {
	s.mu.Lock()
	s.estado = nuevo
	subs := make([]func(Estado), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(nuevo)
	}
}
