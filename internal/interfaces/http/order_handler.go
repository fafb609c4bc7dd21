package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/orders"
	"github.com/jhoicas/concretera-erp/internal/application/production"
)

// OrderHandler pedidos y ordens de produção.
type OrderHandler struct {
	orders     *orders.OrderUseCase
	production *production.ProductionUseCase
	loc        *time.Location
}

// NewOrderHandler construye el handler.
func NewOrderHandler(o *orders.OrderUseCase, p *production.ProductionUseCase, loc *time.Location) *OrderHandler {
	return &OrderHandler{orders: o, production: p, loc: loc}
}

// Create godoc
// @Summary      Crear pedido directo con ítems
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente e ítems"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.Create(c.Context(), GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con ítems y OPs
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orders.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente | em_producao | pronto | entregue | cancelado"
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido (em_producao genera las OPs)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.StatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.orders.UpdateStatus(c.Context(), GetOrganizationID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProductionOrder godoc
// @Summary      Obtener ordem de produção con sus bajas de estoque
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [get]
func (h *OrderHandler) GetProductionOrder(c *fiber.Ctx) error {
	out, err := h.production.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProductionOrders godoc
// @Summary      Listar ordens de produção
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "aguardando | produzindo | finalizado"
// @Success      200     {object}  dto.ProductionOrderListResponse
// @Router       /api/production-orders [get]
func (h *OrderHandler) ListProductionOrders(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.production.List(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateProductionStatus godoc
// @Summary      Cambiar estado de la OP (finalizado da baja a la receita)
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.StatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/status [patch]
func (h *OrderHandler) UpdateProductionStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.production.UpdateStatus(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
