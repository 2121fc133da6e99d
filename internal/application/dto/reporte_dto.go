package dto

// EnviarReporteRequest entrada para el envío del reporte PDF por correo.
// NIT vacío = reporte de todo el inventario.
type EnviarReporteRequest struct {
	Email string `json:"email" validate:"required,email"`
	NIT   string `json:"nit"`
}

// EnviarReporteResponse confirmación del envío.
type EnviarReporteResponse struct {
	Enviado bool   `json:"enviado"`
	Email   string `json:"email"`
}
