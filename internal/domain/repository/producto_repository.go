package repository

import "github.com/nicklcsdev/inventario-lite/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	// Create persiste el producto y asigna su ID. Devuelve domain.ErrDuplicate
	// si ya existe el código dentro de la misma empresa.
	Create(producto *entity.Producto) error
	GetByID(id int64) (*entity.Producto, error)
	GetByEmpresaAndCodigo(nit, codigo string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	ListByEmpresa(nit string, limit, offset int) ([]*entity.Producto, error)
	List(limit, offset int) ([]*entity.Producto, error)
	Delete(id int64) error
	// TotalesPorMoneda suma el valor del inventario agrupado por moneda.
	// nit vacío = todas las empresas.
	TotalesPorMoneda(nit string) (entity.Precios, error)
}
