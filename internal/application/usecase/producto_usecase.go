package usecase

import (
	"time"

	"github.com/nicklcsdev/inventario-lite/internal/application/dto"
	"github.com/nicklcsdev/inventario-lite/internal/domain"
	"github.com/nicklcsdev/inventario-lite/internal/domain/entity"
	"github.com/nicklcsdev/inventario-lite/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos.
type ProductoUseCase struct {
	repo        repository.ProductoRepository
	empresaRepo repository.EmpresaRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, empresaRepo repository.EmpresaRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, empresaRepo: empresaRepo}
}

// Create crea un nuevo producto. El código debe ser único dentro de la empresa;
// un duplicado devuelve domain.ErrDuplicate para que la capa HTTP lo distinga
// de fallas genéricas (la carga masiva depende de esa distinción).
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Codigo == "" || in.Nombre == "" || in.EmpresaNIT == "" {
		return nil, domain.ErrInvalidInput
	}
	precios := entity.Precios(in.Precios)
	if len(precios) == 0 || !precios.Validos() {
		return nil, domain.ErrInvalidInput
	}
	empresa, err := uc.empresaRepo.GetByNIT(in.EmpresaNIT)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetByEmpresaAndCodigo(in.EmpresaNIT, in.Codigo)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	caracteristicas := in.Caracteristicas
	if caracteristicas == "" {
		caracteristicas = "Sin descripción"
	}
	now := time.Now()
	producto := &entity.Producto{
		Codigo:          in.Codigo,
		Nombre:          in.Nombre,
		Caracteristicas: caracteristicas,
		EmpresaNIT:      in.EmpresaNIT,
		Precios:         precios,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id int64) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// Update actualiza un producto. No permite moverlo de empresa ni cambiar su código.
func (uc *ProductoUseCase) Update(id int64, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Caracteristicas != nil {
		producto.Caracteristicas = *in.Caracteristicas
	}
	if len(in.Precios) > 0 {
		precios := entity.Precios(in.Precios)
		if !precios.Validos() {
			return nil, domain.ErrInvalidInput
		}
		producto.Precios = precios
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista productos, opcionalmente acotados a una empresa (nit vacío = todos).
func (uc *ProductoUseCase) List(nit string, limit, offset int) (*dto.ProductoListResponse, error) {
	var (
		list []*entity.Producto
		err  error
	)
	if nit == "" {
		list, err = uc.repo.List(limit, offset)
	} else {
		list, err = uc.repo.ListByEmpresa(nit, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductoUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:              p.ID,
		Codigo:          p.Codigo,
		Nombre:          p.Nombre,
		Caracteristicas: p.Caracteristicas,
		EmpresaNIT:      p.EmpresaNIT,
		Precios:         p.Precios,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
