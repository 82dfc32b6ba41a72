package repository

import (
	"context"
	"errors"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepo interface {
	Get(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockEntry, error)
	// GetForUpdate блокирует строку остатка до конца транзакции (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockEntry, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockEntry, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockEntry, error)
	SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Upsert: insert-or-replace количества по паре (product, warehouse).
	Upsert(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) error
	// AddQuantity: quantity += qty, строка создаётся при отсутствии.
	AddQuantity(ctx context.Context, productID, warehouseID uuid.UUID, qty int64) error
	// RemoveQuantity: if quantity >= qty then quantity -= qty (атомарно).
	RemoveQuantity(ctx context.Context, productID, warehouseID uuid.UUID, qty int64) (bool, error)
	// AdjustQuantity: quantity += delta, если результат не уходит в минус (атомарно).
	AdjustQuantity(ctx context.Context, productID, warehouseID uuid.UUID, delta int64) (bool, error)
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepo(db *gorm.DB) StockRepo { return &stockRepo{db: db} }

func (r *stockRepo) Get(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockEntry, error) {
	var s models.StockEntry
	err := r.db.WithContext(ctx).
		First(&s, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *stockRepo) GetForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockEntry, error) {
	var s models.StockEntry
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *stockRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockEntry, error) {
	var list []models.StockEntry
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&list).Error
	return list, err
}

func (r *stockRepo) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockEntry, error) {
	var list []models.StockEntry
	err := r.db.WithContext(ctx).Where("warehouse_id = ?", warehouseID).Find(&list).Error
	return list, err
}

func (r *stockRepo) SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.StockEntry{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error
	return total, err
}

func (r *stockRepo) Upsert(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO stock_entries (product_id, warehouse_id, quantity, updated_at)
VALUES (@pid, @wid, @q, now())
ON CONFLICT (product_id, warehouse_id)
DO UPDATE SET quantity = @q, updated_at = now()
`, map[string]any{
		"pid": productID,
		"wid": warehouseID,
		"q":   quantity,
	}).Error
}

func (r *stockRepo) AddQuantity(ctx context.Context, productID, warehouseID uuid.UUID, qty int64) error {
	return r.db.WithContext(ctx).Exec(`
INSERT INTO stock_entries (product_id, warehouse_id, quantity, updated_at)
VALUES (@pid, @wid, @q, now())
ON CONFLICT (product_id, warehouse_id)
DO UPDATE SET quantity = stock_entries.quantity + @q, updated_at = now()
`, map[string]any{
		"pid": productID,
		"wid": warehouseID,
		"q":   qty,
	}).Error
}

func (r *stockRepo) RemoveQuantity(ctx context.Context, productID, warehouseID uuid.UUID, qty int64) (bool, error) {
	// атомарно: quantity -= qty, только если хватает
	tx := r.db.WithContext(ctx).Exec(`
UPDATE stock_entries
SET quantity = quantity - @q,
    updated_at = now()
WHERE product_id = @pid
  AND warehouse_id = @wid
  AND quantity >= @q
`, map[string]any{
		"pid": productID,
		"wid": warehouseID,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *stockRepo) AdjustQuantity(ctx context.Context, productID, warehouseID uuid.UUID, delta int64) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE stock_entries
SET quantity = quantity + @delta,
    updated_at = now()
WHERE product_id = @pid
  AND warehouse_id = @wid
  AND quantity + @delta >= 0
`, map[string]any{
		"pid":   productID,
		"wid":   warehouseID,
		"delta": delta,
	})
	return tx.RowsAffected > 0, tx.Error
}
