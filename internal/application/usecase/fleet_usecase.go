package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/concretera-erp/internal/application/dto"
	"github.com/jhoicas/concretera-erp/internal/domain"
	"github.com/jhoicas/concretera-erp/internal/domain/entity"
	"github.com/jhoicas/concretera-erp/internal/domain/repository"
)

// FleetUseCase caminhões y motoristas usados por la logística.
type FleetUseCase struct {
	trucks  repository.TruckRepository
	drivers repository.DriverRepository
}

// NewFleetUseCase construye el caso de uso.
func NewFleetUseCase(trucks repository.TruckRepository, drivers repository.DriverRepository) *FleetUseCase {
	return &FleetUseCase{trucks: trucks, drivers: drivers}
}

// CreateTruck registra un caminhão. La placa se guarda en mayúsculas y sin guion.
func (uc *FleetUseCase) CreateTruck(ctx context.Context, orgID string, in dto.CreateTruckRequest) (*dto.TruckResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	plate := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(in.Plate), "-", ""))
	if plate == "" {
		return nil, domain.Validation("plate_required")
	}
	if in.CapacityM3.IsNegative() {
		return nil, domain.Validation("negative_capacity")
	}
	t := &entity.Truck{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Plate:          plate,
		Model:          in.Model,
		CapacityM3:     in.CapacityM3,
		Active:         true,
		CreatedAt:      time.Now(),
	}
	if err := uc.trucks.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTruckResponse(t), nil
}

// ListTrucks lista los caminhões de la organización.
func (uc *FleetUseCase) ListTrucks(ctx context.Context, orgID string, f repository.ListFilter) ([]dto.TruckResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.trucks.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TruckResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTruckResponse(t))
	}
	return out, nil
}

// CreateDriver registra un motorista.
func (uc *FleetUseCase) CreateDriver(ctx context.Context, orgID string, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validation("name_required")
	}
	d := &entity.Driver{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		License:        in.License,
		Phone:          in.Phone,
		Active:         true,
		CreatedAt:      time.Now(),
	}
	if err := uc.drivers.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDriverResponse(d), nil
}

// ListDrivers lista los motoristas de la organización.
func (uc *FleetUseCase) ListDrivers(ctx context.Context, orgID string, f repository.ListFilter) ([]dto.DriverResponse, error) {
	if err := domain.RequireOrganization(orgID); err != nil {
		return nil, err
	}
	list, err := uc.drivers.List(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDriverResponse(d))
	}
	return out, nil
}

func toTruckResponse(t *entity.Truck) *dto.TruckResponse {
	return &dto.TruckResponse{
		ID:         t.ID,
		Plate:      t.Plate,
		Model:      t.Model,
		CapacityM3: t.CapacityM3,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
	}
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	return &dto.DriverResponse{
		ID:        d.ID,
		Name:      d.Name,
		License:   d.License,
		Phone:     d.Phone,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
	}
}
