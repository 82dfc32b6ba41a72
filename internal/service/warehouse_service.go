package service

import (
	"context"
	"strings"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type warehouseService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewWarehouseService(repo *repository.Repository) WarehouseService {
	return &warehouseService{repo: repo, now: time.Now}
}

func (s *warehouseService) CreateWarehouse(ctx context.Context, in WarehouseInput) (*models.Warehouse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}

	now := s.now()
	w := &models.Warehouse{
		Name:            name,
		ShippingEnabled: in.ShippingEnabled,
		IsActive:        in.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Warehouses.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *warehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	w, err := s.repo.Warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWarehouseNotFound
	}
	return w, nil
}

func (s *warehouseService) ListWarehouses(ctx context.Context, onlyActive bool) ([]models.Warehouse, error) {
	return s.repo.Warehouses.List(ctx, onlyActive)
}

func (s *warehouseService) UpdateWarehouse(ctx context.Context, id uuid.UUID, patch WarehousePatch) (*models.Warehouse, error) {
	w, err := s.repo.Warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWarehouseNotFound
	}

	fields := map[string]any{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		fields["name"] = name
	}
	if patch.ShippingEnabled != nil {
		fields["shipping_enabled"] = *patch.ShippingEnabled
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if len(fields) == 0 {
		return w, nil
	}
	fields["updated_at"] = s.now()

	if err := s.repo.Warehouses.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Warehouses.GetByID(ctx, id)
}

func (s *warehouseService) ActivateWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	active := true
	return s.UpdateWarehouse(ctx, id, WarehousePatch{IsActive: &active})
}

func (s *warehouseService) DeactivateWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	active := false
	return s.UpdateWarehouse(ctx, id, WarehousePatch{IsActive: &active})
}

func (s *warehouseService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Warehouses.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWarehouseNotFound
	}
	return nil
}
