package repository

import "github.com/nicklcsdev/inventario-lite/internal/domain/entity"

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure.
type EmpresaRepository interface {
	Create(empresa *entity.Empresa) error
	GetByNIT(nit string) (*entity.Empresa, error)
	Update(empresa *entity.Empresa) error
	List(limit, offset int) ([]*entity.Empresa, error)
	Delete(nit string) error
}
