package http

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores de campo usan el nombre JSON, que es lo que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parsea el body y corre las reglas `validate`. Devuelve un error listo para writeError.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validateStruct(out)
}

func validateStruct(in any) error {
	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return &fieldError{errs: fieldErrs}
		}
		return err
	}
	return nil
}

// listFilter lee status/from/to/limit/offset de la query.
func listFilter(c *fiber.Ctx, loc *time.Location) (repository.ListFilter, error) {
	var q dto.ListRequest
	if err := c.QueryParser(&q); err != nil {
		return repository.ListFilter{}, domain.Validation("invalid_query")
	}
	if err := validateStruct(&q); err != nil {
		return repository.ListFilter{}, err
	}
	return q.Filter(loc)
}

var errInvalidBody = errors.New("cuerpo inválido")

type fieldError struct {
	errs validator.ValidationErrors
}

func (e *fieldError) Error() string { return e.errs.Error() }

func (e *fieldError) fields() map[string]string {
	out := make(map[string]string, len(e.errs))
	for _, fe := range e.errs {
		key := strings.SplitN(fe.Namespace(), ".", 2)
		field := fe.Field()
		if len(key) == 2 {
			field = key[1]
		}
		out[field] = fe.Tag()
	}
	return out
}

// writeError traduce errores de dominio a status HTTP y cuerpo {code, message, details}.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func errorBody(err error) (int, dto.ErrorResponse) {
	var (
		fe    *fieldError
		stock *domain.InsufficientStockError
	)
	reason := domain.Reason(err)
	details := map[string]any(nil)
	if reason != "" {
		details = map[string]any{"reason": reason}
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	case errors.As(err, &fe):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: map[string]any{"fields": fe.fields()},
		}
	case errors.As(err, &stock):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stock.Error(),
			Details: map[string]any{
				"reason":    reason,
				"material":  stock.Material,
				"required":  stock.Required,
				"available": stock.Available,
			},
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Details: details}
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error(), Details: details}
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error(), Details: details}
	case errors.Is(err, domain.ErrDomain):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "DOMAIN_ERROR", Message: err.Error(), Details: details}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}
