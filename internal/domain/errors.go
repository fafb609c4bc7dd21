package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDomain             = errors.New("regla de negocio incumplida")
)

// ValidationError falta un campo obligatorio o un valor está fuera de rango.
// Reason es un código estable (ej: "loss_reason_required") que la UI puede traducir.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validación: " + e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// InvalidStateError la operación no es válida desde el estado actual de la entidad.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return "estado inválido: " + e.Reason }

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// DomainError regla de negocio incumplida que no es de validación ni de estado (ej: receta sin definir).
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string { return "dominio: " + e.Reason }

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// ConflictError la operación duplicaría algo que debe ser único (conversión, factura activa).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "conflicto: " + e.Reason }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InsufficientStockError la baja de estoque no puede aplicarse para una materia prima.
type InsufficientStockError struct {
	Material  string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: requerido %s, disponible %s",
		e.Material, e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Constructores cortos para los casos de uso.

func Validation(reason string) error   { return &ValidationError{Reason: reason} }
func InvalidState(reason string) error { return &InvalidStateError{Reason: reason} }
func Rule(reason string) error         { return &DomainError{Reason: reason} }
func Conflict(reason string) error     { return &ConflictError{Reason: reason} }

// Reason extrae el código estable de un error tipado; vacío si no lo tiene.
func Reason(err error) string {
	var (
		v  *ValidationError
		s  *InvalidStateError
		d  *DomainError
		c  *ConflictError
		is *InsufficientStockError
	)
	switch {
	case errors.As(err, &v):
		return v.Reason
	case errors.As(err, &s):
		return s.Reason
	case errors.As(err, &d):
		return d.Reason
	case errors.As(err, &c):
		return c.Reason
	case errors.As(err, &is):
		return "insufficient_stock"
	}
	return ""
}

// RequireOrganization rechaza operaciones sin organización en el contexto de identidad.
func RequireOrganization(orgID string) error {
	if orgID == "" {
		return ErrUnauthorized
	}
	return nil
}
