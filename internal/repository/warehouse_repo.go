package repository

import (
	"context"
	"errors"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarehouseRepo interface {
	Create(ctx context.Context, w *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	List(ctx context.Context, onlyActive bool) ([]models.Warehouse, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type warehouseRepo struct{ db *gorm.DB }

func NewWarehouseRepo(db *gorm.DB) WarehouseRepo { return &warehouseRepo{db: db} }

func (r *warehouseRepo) Create(ctx context.Context, w *models.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var w models.Warehouse
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &w, err
}

func (r *warehouseRepo) List(ctx context.Context, onlyActive bool) ([]models.Warehouse, error) {
	q := r.db.WithContext(ctx).Model(&models.Warehouse{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var list []models.Warehouse
	err := q.Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *warehouseRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Warehouse{}).Where("id = ?", id).Updates(fields).Error
}

func (r *warehouseRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Warehouse{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
