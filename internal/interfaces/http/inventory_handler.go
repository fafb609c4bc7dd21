package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/inventory"
)

// InventoryHandler materias primas, entradas manuales, kardex y lista de reposición (protegido).
type InventoryHandler struct {
	uc            *inventory.InventoryUseCase
	replenishment *inventory.ReplenishmentUseCase
	loc           *time.Location
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase, replenishment *inventory.ReplenishmentUseCase, loc *time.Location) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment, loc: loc}
}

// CreateRawMaterial godoc
// @Summary      Registrar materia prima con saldo inicial
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "Nombre, unidad, saldo inicial y mínimo"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/raw-materials [post]
func (h *InventoryHandler) CreateRawMaterial(c *fiber.Ctx) error {
	var in dto.CreateRawMaterialRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateRawMaterial(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRawMaterial godoc
// @Summary      Obtener materia prima
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RawMaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [get]
func (h *InventoryHandler) GetRawMaterial(c *fiber.Ctx) error {
	out, err := h.uc.GetRawMaterial(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListRawMaterials godoc
// @Summary      Listar materias primas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RawMaterialListResponse
// @Router       /api/raw-materials [get]
func (h *InventoryHandler) ListRawMaterials(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListRawMaterials(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddStock godoc
// @Summary      Entrada manual de estoque
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la materia prima"
// @Param        body  body  dto.AddStockRequest  true  "Cantidad (> 0), referencia, descripción"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id}/entries [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddStock(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de la materia prima
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la materia prima"
// @Param        status  query  string  false  "entrada | saida"
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/raw-materials/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMovements(c.Context(), GetOrganizationID(c), c.Params("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición (materias primas en o bajo el mínimo)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.Context(), GetOrganizationID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
