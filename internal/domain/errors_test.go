package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/concretera-erp/internal/domain"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	assert.ErrorIs(t, domain.Validation("loss_reason_required"), domain.ErrInvalidInput)
	assert.ErrorIs(t, domain.InvalidState("must_be_approved"), domain.ErrInvalidState)
	assert.ErrorIs(t, domain.Rule("recipe_not_defined"), domain.ErrDomain)
	assert.ErrorIs(t, domain.Conflict("budget_already_converted"), domain.ErrConflict)

	wrapped := fmt.Errorf("finalizar: %w", domain.InvalidState("production_not_finished"))
	assert.ErrorIs(t, wrapped, domain.ErrInvalidState)
	assert.Equal(t, "production_not_finished", domain.Reason(wrapped))
}

func TestInsufficientStockError_FormatoDosDecimales(t *testing.T) {
	err := &domain.InsufficientStockError{
		Material:  "cimento",
		Required:  decimal.NewFromInt(300),
		Available: decimal.NewFromInt(250),
	}
	assert.Equal(t, "stock insuficiente de cimento: requerido 300.00, disponible 250.00", err.Error())
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "insufficient_stock", domain.Reason(err))
}
