package repository

import (
	"context"
	"errors"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepo interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ListByReference(ctx context.Context, referenceID uuid.UUID) ([]models.Reservation, error)
	ListActiveByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.Reservation, error)
	// SumActiveByProductAndWarehouse — сумма ACTIVE-резервов по паре (CONSUMED/RELEASED не считаются).
	SumActiveByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error)
	// UpdateStatusIf переводит статус только из ожидаемого; RowsAffected == 0 значит,
	// что резерв уже в другом состоянии.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to models.ReservationStatus) (bool, error)
	ListExpired(ctx context.Context, now time.Time) ([]models.Reservation, error)
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) ReservationRepo { return &reservationRepo{db: db} }

func (r *reservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &res, err
}

func (r *reservationRepo) ListByReference(ctx context.Context, referenceID uuid.UUID) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *reservationRepo) ListActiveByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ? AND status = ?", productID, warehouseID, models.ReservationActive).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *reservationRepo) SumActiveByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ? AND warehouse_id = ? AND status = ?", productID, warehouseID, models.ReservationActive).
		Scan(&total).Error
	return total, err
}

func (r *reservationRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to models.ReservationStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return tx.RowsAffected > 0, tx.Error
}

func (r *reservationRepo) ListExpired(ctx context.Context, now time.Time) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.ReservationActive, now).
		Order("expires_at ASC").
		Find(&list).Error
	return list, err
}
