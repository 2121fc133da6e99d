package usecase

import (
	"time"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	"github.com/nicklcsdev/inventario-lite/internal/domain/repository"
)

// EmpresaUseCase casos de uso CRUD para empresas (tenants).
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase construye el caso de uso.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// Create crea una nueva empresa. El NIT actúa como llave primaria.
func (uc *EmpresaUseCase) Create(in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if in.NIT == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByNIT(in.NIT)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	empresa := &entity.Empresa{
		NIT:       in.NIT,
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(empresa); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

// GetByNIT obtiene una empresa por NIT.
func (uc *EmpresaUseCase) GetByNIT(nit string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByNIT(nit)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, nil
	}
	return toEmpresaResponse(empresa), nil
}

// Update actualiza nombre, dirección y teléfono. El NIT no se puede cambiar:
// la edición opera siempre sobre la empresa identificada por el NIT de la ruta.
func (uc *EmpresaUseCase) Update(nit string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByNIT(nit)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		empresa.Nombre = *in.Nombre
	}
	if in.Direccion != nil {
		empresa.Direccion = *in.Direccion
	}
	if in.Telefono != nil {
		empresa.Telefono = *in.Telefono
	}
	empresa.UpdatedAt = time.Now()
	if err := uc.repo.Update(empresa); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

// List lista empresas con paginación.
func (uc *EmpresaUseCase) List(limit, offset int) (*dto.EmpresaListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmpresaResponse(e))
	}
	return &dto.EmpresaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una empresa por NIT (y en cascada sus productos, vía FK).
func (uc *EmpresaUseCase) Delete(nit string) error {
	return uc.repo.Delete(nit)
}

func toEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	if e == nil {
		return nil
	}
	return &dto.EmpresaResponse{
		NIT:       e.NIT,
		Nombre:    e.Nombre,
		Direccion: e.Direccion,
		Telefono:  e.Telefono,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
