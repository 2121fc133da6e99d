package dto

// Límites de paginación para listados.
const (
	PageLimitDefault = 20
	PageLimitMax     = 100
)

// PageRequest paginación para listados. Se llena con c.QueryParser.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica defaults y acota Limit/Offset a rangos válidos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = PageLimitDefault
	}
	if p.Limit > PageLimitMax {
		p.Limit = PageLimitMax
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
