package repository

import (
	"context"
	"errors"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepo interface {
	Create(ctx context.Context, t *models.InventoryTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryTransaction, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.InventoryTransaction, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryTransaction, error)
	ListByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.InventoryTransaction, error)
	ListByReference(ctx context.Context, referenceID uuid.UUID) ([]models.InventoryTransaction, error)
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepo(db *gorm.DB) TransactionRepo { return &transactionRepo{db: db} }

func (r *transactionRepo) Create(ctx context.Context, t *models.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryTransaction, error) {
	var t models.InventoryTransaction
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *transactionRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.InventoryTransaction, error) {
	var list []models.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *transactionRepo) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryTransaction, error) {
	var list []models.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *transactionRepo) ListByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.InventoryTransaction, error) {
	var list []models.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *transactionRepo) ListByReference(ctx context.Context, referenceID uuid.UUID) ([]models.InventoryTransaction, error) {
	var list []models.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
