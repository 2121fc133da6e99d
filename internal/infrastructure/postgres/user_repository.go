package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nicklcsdev/inventario-lite/internal/domain"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	"github.com/nicklcsdev/inventario-lite/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, email, nombre, password_hash, rol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.Nombre, user.PasswordHash, user.Rol,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// FindByEmail busca un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.Usuario, error) {
	query := `
		SELECT id, email, nombre, password_hash, rol, created_at, updated_at
		FROM usuarios WHERE email = $1`
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&u.ID, &u.Email, &u.Nombre, &u.PasswordHash, &u.Rol, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
