package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nicklcsdev/inventario-lite/internal/domain"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	"github.com/nicklcsdev/inventario-lite/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL.
// Precios se persiste como JSONB {moneda: valor}.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos.
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto y asigna su ID (serial).
// Un código repetido dentro de la empresa devuelve domain.ErrDuplicate.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	precios, err := json.Marshal(producto.Precios)
	if err != nil {
		return fmt.Errorf("serializar precios: %w", err)
	}
	query := `
		INSERT INTO productos (codigo, nombre, caracteristicas, empresa_nit, precios, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err = r.q.QueryRow(context.Background(), query,
		producto.Codigo, producto.Nombre, producto.Caracteristicas,
		producto.EmpresaNIT, precios, producto.CreatedAt, producto.UpdatedAt,
	).Scan(&producto.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id int64) (*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, caracteristicas, empresa_nit, precios, created_at, updated_at
		FROM productos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmpresaAndCodigo obtiene un producto por empresa y código.
func (r *ProductoRepo) GetByEmpresaAndCodigo(nit, codigo string) (*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, caracteristicas, empresa_nit, precios, created_at, updated_at
		FROM productos WHERE empresa_nit = $1 AND codigo = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, nit, codigo))
}

// Update actualiza un producto existente. Código y empresa no cambian.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	precios, err := json.Marshal(producto.Precios)
	if err != nil {
		return fmt.Errorf("serializar precios: %w", err)
	}
	query := `
		UPDATE productos SET nombre = $2, caracteristicas = $3, precios = $4, updated_at = $5
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.Caracteristicas, precios, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// ListByEmpresa lista productos de una empresa con paginación.
func (r *ProductoRepo) ListByEmpresa(nit string, limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, caracteristicas, empresa_nit, precios, created_at, updated_at
		FROM productos WHERE empresa_nit = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, nit, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	return r.scanMany(rows)
}

// List lista productos de todas las empresas con paginación.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT id, codigo, nombre, caracteristicas, empresa_nit, precios, created_at, updated_at
		FROM productos ORDER BY empresa_nit, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	return r.scanMany(rows)
}

// TotalesPorMoneda suma el valor del inventario por moneda. nit vacío = todas
// las empresas. El agregado sale como NUMERIC y se escanea directo a
// decimal.Decimal gracias al codec registrado en el pool.
func (r *ProductoRepo) TotalesPorMoneda(nit string) (entity.Precios, error) {
	query := `
		SELECT kv.key, SUM(kv.value::numeric)
		FROM productos, LATERAL jsonb_each_text(precios) AS kv
		WHERE $1 = '' OR empresa_nit = $1
		GROUP BY kv.key`
	rows, err := r.q.Query(context.Background(), query, nit)
	if err != nil {
		return nil, fmt.Errorf("totales por moneda: %w", err)
	}
	defer rows.Close()

	totales := entity.Precios{}
	for rows.Next() {
		var (
			moneda string
			total  decimal.Decimal
		)
		if err := rows.Scan(&moneda, &total); err != nil {
			return nil, fmt.Errorf("scan total por moneda: %w", err)
		}
		totales[moneda] = total
	}
	return totales, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) scanOne(row pgx.Row) (*entity.Producto, error) {
	var (
		p          entity.Producto
		preciosRaw []byte
	)
	err := row.Scan(&p.ID, &p.Codigo, &p.Nombre, &p.Caracteristicas, &p.EmpresaNIT,
		&preciosRaw, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	if err := json.Unmarshal(preciosRaw, &p.Precios); err != nil {
		return nil, fmt.Errorf("deserializar precios: %w", err)
	}
	return &p, nil
}

func (r *ProductoRepo) scanMany(rows pgx.Rows) ([]*entity.Producto, error) {
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var (
			p          entity.Producto
			preciosRaw []byte
		)
		if err := rows.Scan(&p.ID, &p.Codigo, &p.Nombre, &p.Caracteristicas, &p.EmpresaNIT,
			&preciosRaw, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		if err := json.Unmarshal(preciosRaw, &p.Precios); err != nil {
			return nil, fmt.Errorf("deserializar precios: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
