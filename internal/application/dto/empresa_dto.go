package dto

import "time"

// CreateEmpresaRequest entrada para crear una empresa. El NIT es la llave primaria.
type CreateEmpresaRequest struct {
	NIT       string `json:"nit" validate:"required,max=50"`
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Direccion string `json:"direccion" validate:"required,max=255"`
	Telefono  string `json:"telefono" validate:"required,max=20"`
}

// UpdateEmpresaRequest entrada para actualizar una empresa. No incluye NIT:
// la identificación tributaria es inmutable una vez creada la empresa.
type UpdateEmpresaRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,max=255"`
	Direccion *string `json:"direccion" validate:"omitempty,max=255"`
	Telefono  *string `json:"telefono" validate:"omitempty,max=20"`
}

// EmpresaResponse salida de una empresa.
type EmpresaResponse struct {
	NIT       string    `json:"nit"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmpresaListResponse listado paginado de empresas.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
