package entity

import "time"

// Roles de usuario. Los administradores tienen acceso total; los usuarios
// externos solo pueden consultar (lecturas).
const (
	RolAdmin   = "admin"
	RolExterno = "externo"
)

// Usuario cuenta de acceso al sistema.
type Usuario struct {
	ID           string
	Email        string
	Nombre       string
	PasswordHash string
	Rol          string // ver constantes Rol*
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EsAdmin indica si el usuario tiene rol de administrador.
func (u *Usuario) EsAdmin() bool { return u.Rol == RolAdmin }
