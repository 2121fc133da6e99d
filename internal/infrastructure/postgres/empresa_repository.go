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

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador de persistencia para empresas.
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste una nueva empresa. El NIT es la llave primaria.
func (r *EmpresaRepo) Create(empresa *entity.Empresa) error {
	query := `
		INSERT INTO empresas (nit, nombre, direccion, telefono, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		empresa.NIT, empresa.Nombre, empresa.Direccion, empresa.Telefono,
		empresa.CreatedAt, empresa.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByNIT obtiene una empresa por NIT.
func (r *EmpresaRepo) GetByNIT(nit string) (*entity.Empresa, error) {
	query := `
		SELECT nit, nombre, direccion, telefono, created_at, updated_at
		FROM empresas WHERE nit = $1`
	var e entity.Empresa
	err := r.q.QueryRow(context.Background(), query, nit).Scan(
		&e.NIT, &e.Nombre, &e.Direccion, &e.Telefono, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// Update actualiza nombre, dirección y teléfono. El NIT nunca cambia.
func (r *EmpresaRepo) Update(empresa *entity.Empresa) error {
	query := `
		UPDATE empresas SET nombre = $2, direccion = $3, telefono = $4, updated_at = $5
		WHERE nit = $1`
	_, err := r.q.Exec(context.Background(), query,
		empresa.NIT, empresa.Nombre, empresa.Direccion, empresa.Telefono, empresa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return nil
}

// List lista empresas con paginación.
func (r *EmpresaRepo) List(limit, offset int) ([]*entity.Empresa, error) {
	query := `
		SELECT nit, nombre, direccion, telefono, created_at, updated_at
		FROM empresas ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.NIT, &e.Nombre, &e.Direccion, &e.Telefono, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina una empresa por NIT (los productos caen en cascada por FK).
func (r *EmpresaRepo) Delete(nit string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM empresas WHERE nit = $1`, nit)
	if err != nil {
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}
