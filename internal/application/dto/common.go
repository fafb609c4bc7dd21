package dto

import (
	"time"

	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// DateLayout formato de fecha de los filtros (ISO, sin hora).
const DateLayout = "2006-01-02"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ListRequest filtros de listado por query string. From/To en formato YYYY-MM-DD, ambos inclusivos.
type ListRequest struct {
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
}

// Filter convierte la petición en un filtro de repositorio. Las fechas se interpretan en loc;
// To se vuelve exclusivo (día siguiente a las 00:00).
func (r ListRequest) Filter(loc *time.Location) (repository.ListFilter, error) {
	page := PageRequest{Limit: r.Limit, Offset: r.Offset}
	page.DefaultPage()
	f := repository.ListFilter{Status: r.Status, Limit: page.Limit, Offset: page.Offset}
	from, to, err := ParseDateRange(r.From, r.To, loc)
	if err != nil {
		return f, err
	}
	f.From, f.To = from, to
	return f, nil
}

// ParseDateRange interpreta from/to (YYYY-MM-DD, opcionales) en loc. El to devuelto es exclusivo.
func ParseDateRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var fromT, toT *time.Time
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, loc)
		if err != nil {
			return nil, nil, domain.Validation("invalid_from_date")
		}
		fromT = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, loc)
		if err != nil {
			return nil, nil, domain.Validation("invalid_to_date")
		}
		t = t.AddDate(0, 0, 1)
		toT = &t
	}
	if fromT != nil && toT != nil && !fromT.Before(*toT) {
		return nil, nil, domain.Validation("invalid_date_range")
	}
	return fromT, toT, nil
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// StatusRequest body genérico de PATCH .../status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}
