package entity

import "time"

// Empresa representa un tenant del sistema: una compañía dueña de un catálogo
// de productos. El NIT (identificación tributaria colombiana) es su llave
// primaria y es inmutable una vez creada.
type Empresa struct {
	NIT       string
	Nombre    string
	Direccion string
	Telefono  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
