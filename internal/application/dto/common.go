package dto

import "github.com/jhoicas/Almacen-api/internal/domain"

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// DefaultPage aplica valores por defecto cuando Page/PageSize vienen en cero
// (ausentes en la query). Los valores negativos no se normalizan: los
// rechaza Validate.
func (p *PageRequest) DefaultPage() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 50
	}
}

// Validate verifica los rangos de paginación: page >= 1 y page_size en 1..100.
func (p PageRequest) Validate() error {
	if p.Page < 1 || p.PageSize < 1 || p.PageSize > 100 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Offset devuelve el offset SQL equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
