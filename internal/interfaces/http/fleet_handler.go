package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/application/usecase"
)

// FleetHandler caminhões y motoristas.
type FleetHandler struct {
	uc  *usecase.FleetUseCase
	loc *time.Location
}

// NewFleetHandler construye el handler.
func NewFleetHandler(uc *usecase.FleetUseCase, loc *time.Location) *FleetHandler {
	return &FleetHandler{uc: uc, loc: loc}
}

// CreateTruck godoc
// @Summary      Registrar caminhão
// @Tags         fleet
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTruckRequest  true  "Placa, modelo, capacidad"
// @Success      201   {object}  dto.TruckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trucks [post]
func (h *FleetHandler) CreateTruck(c *fiber.Ctx) error {
	var in dto.CreateTruckRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateTruck(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTrucks godoc
// @Summary      Listar caminhões
// @Tags         fleet
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TruckResponse
// @Router       /api/trucks [get]
func (h *FleetHandler) ListTrucks(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListTrucks(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateDriver godoc
// @Summary      Registrar motorista
// @Tags         fleet
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "Nombre, CNH, teléfono"
// @Success      201   {object}  dto.DriverResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drivers [post]
func (h *FleetHandler) CreateDriver(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateDriver(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDrivers godoc
// @Summary      Listar motoristas
// @Tags         fleet
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DriverResponse
// @Router       /api/drivers [get]
func (h *FleetHandler) ListDrivers(c *fiber.Ctx) error {
	f, err := listFilter(c, h.loc)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListDrivers(c.Context(), GetOrganizationID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
