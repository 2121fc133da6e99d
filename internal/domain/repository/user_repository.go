package repository

import "github.com/nicklcsdev/inventario-lite/internal/domain/entity"

// UserRepository define el puerto de persistencia para Usuario (DIP).
type UserRepository interface {
	Create(user *entity.Usuario) error
	FindByEmail(email string) (*entity.Usuario, error)
}
