package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/concretera-erp/internal/application/billing"
	"github.com/jhoicas/concretera-erp/internal/application/dto"
)

// BillingHandler contas a receber y NF-e simuladas (protegido).
type BillingHandler struct {
	receivables *billing.ReceivableUseCase
	invoices    *billing.InvoiceUseCase
	loc         *time.Location
}

// NewBillingHandler construye el handler.
func NewBillingHandler(receivables *billing.ReceivableUseCase, invoices *billing.InvoiceUseCase, loc *time.Location) *BillingHandler {
	return &BillingHandler{receivables: receivables, invoices: invoices, loc: loc}
}

// ListReceivables godoc
// @Summary      Listar contas a receber
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente | pago | vencido"
// @Param        from    query  string  false  "Fecha de emisión desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Fecha de emisión hasta (YYYY-MM-DD)"
// @Success      200     {object}  dto.ReceivableListResponse
// @Router       /api/receivables [get]
func (h *BillingHandler) ListReceivables(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.receivables.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReceivable godoc
// @Summary      Obtener conta a receber
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ReceivableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receivables/{id} [get]
func (h *BillingHandler) GetReceivable(c *fiber.Ctx) error {
	out, err := h.receivables.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PayReceivable godoc
// @Summary      Registrar pago
// @Tags         receivables
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.PayReceivableRequest  true  "Forma de pago"
// @Success      200   {object}  dto.ReceivableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receivables/{id}/pay [post]
func (h *BillingHandler) PayReceivable(c *fiber.Ctx) error {
	var in dto.PayReceivableRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.receivables.MarkPaid(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RefreshOverdue godoc
// @Summary      Marcar como vencidas las cuentas pendientes fuera de plazo
// @Tags         receivables
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RefreshOverdueResponse
// @Router       /api/receivables/refresh-overdue [post]
func (h *BillingHandler) RefreshOverdue(c *fiber.Ctx) error {
	out, err := h.receivables.RefreshOverdue(c.Context(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// IssueInvoice godoc
// @Summary      Emitir NF-e simulada para una entrega concluida
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueInvoiceRequest  true  "delivery_id"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *BillingHandler) IssueInvoice(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.Issue(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetInvoice godoc
// @Summary      Obtener NF-e
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.invoices.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListInvoices godoc
// @Summary      Listar NF-e
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "emitida | cancelada"
// @Success      200     {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelInvoice godoc
// @Summary      Cancelar NF-e emitida
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.CancelInvoiceRequest  true  "Motivo (15 a 255 caracteres)"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/cancel [post]
func (h *BillingHandler) CancelInvoice(c *fiber.Ctx) error {
	var in dto.CancelInvoiceRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.invoices.Cancel(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
