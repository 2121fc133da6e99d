package dto

import "time"

// RegisterRequest entrada para registro (password en texto, se hashea en use case).
// No lleva rol: el registro público siempre crea usuarios "externo" (solo
// lectura); los admins salen del seed, nunca de este endpoint.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Rol       string    `json:"rol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT, bandera de rol e identidad.
// Es todo lo que el cliente necesita para poblar su sesión local.
type LoginResponse struct {
	Token   string `json:"access"`
	IsAdmin bool   `json:"is_admin"`
	Email   string `json:"email"`
}
