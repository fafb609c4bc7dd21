package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/sales"
)

// SalesHandler orçamentos (quotes), propostas (budgets) y el preview de precio.
type SalesHandler struct {
	quotes  *sales.QuoteUseCase
	budgets *sales.BudgetUseCase
	loc     *time.Location
}

// NewSalesHandler construye el handler.
func NewSalesHandler(quotes *sales.QuoteUseCase, budgets *sales.BudgetUseCase, loc *time.Location) *SalesHandler {
	return &SalesHandler{quotes: quotes, budgets: budgets, loc: loc}
}

// QuotePreview godoc
// @Summary      Calcular volumen, frete, total y lucro sin persistir
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuotePreviewRequest  true  "Dimensiones y precios"
// @Success      200   {object}  dto.QuotePreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/quote-preview [post]
func (h *SalesHandler) QuotePreview(c *fiber.Ctx) error {
	var in dto.QuotePreviewRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.Preview(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateQuote godoc
// @Summary      Crear orçamento
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "Cliente, producto, dimensiones y frete"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *SalesHandler) CreateQuote(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.Create(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetQuote godoc
// @Summary      Obtener orçamento
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *SalesHandler) GetQuote(c *fiber.Ctx) error {
	out, err := h.quotes.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListQuotes godoc
// @Summary      Listar orçamentos
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente | negociacao | fechado | perdido"
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Success      200     {object}  dto.QuoteListResponse
// @Router       /api/quotes [get]
func (h *SalesHandler) ListQuotes(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuoteStatus godoc
// @Summary      Cambiar estado del orçamento (fechado agenda la entrega)
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID"
// @Param        body  body  dto.UpdateQuoteStatusRequest  true  "Nuevo estado y motivo de pérdida"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/status [patch]
func (h *SalesHandler) UpdateQuoteStatus(c *fiber.Ctx) error {
	var in dto.UpdateQuoteStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.quotes.UpdateStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateBudget godoc
// @Summary      Crear proposta con ítems
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBudgetRequest  true  "Cliente e ítems"
// @Success      201   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/budgets [post]
func (h *SalesHandler) CreateBudget(c *fiber.Ctx) error {
	var in dto.CreateBudgetRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.budgets.Create(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetBudget godoc
// @Summary      Obtener proposta con ítems
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.BudgetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id} [get]
func (h *SalesHandler) GetBudget(c *fiber.Ctx) error {
	out, err := h.budgets.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListBudgets godoc
// @Summary      Listar propostas
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "rascunho | enviado | aprovado | cancelado"
// @Success      200     {object}  dto.BudgetListResponse
// @Router       /api/budgets [get]
func (h *SalesHandler) ListBudgets(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.budgets.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateBudgetStatus godoc
// @Summary      Cambiar estado de la proposta
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.StatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.BudgetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/status [patch]
func (h *SalesHandler) UpdateBudgetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.budgets.UpdateStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConvertBudget godoc
// @Summary      Convertir proposta aprobada en pedido
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      201  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/convert [post]
func (h *SalesHandler) ConvertBudget(c *fiber.Ctx) error {
	out, err := h.budgets.ConvertToOrder(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
