package service

import (
	"context"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
)

type StockService interface {
	SetStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (*models.StockEntry, error)
	GetStock(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockEntry, error)
	GetStockByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockEntry, error)
	GetStockByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockEntry, error)
	AdjustStock(ctx context.Context, productID, warehouseID uuid.UUID, delta int64) (*models.StockEntry, error)
	IncreaseStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (*models.StockEntry, error)
	DecreaseStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (*models.StockEntry, error)
	GetTotalStock(ctx context.Context, productID uuid.UUID) (int64, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64, referenceID uuid.UUID, expiresAt *time.Time) (*models.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	GetReservationsByReference(ctx context.Context, referenceID uuid.UUID) ([]models.Reservation, error)
	GetActiveReservations(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.Reservation, error)
	ConsumeReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ReleaseReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	ReleaseReservationsByReference(ctx context.Context, referenceID uuid.UUID) ([]models.Reservation, error)
	GetExpiredReservations(ctx context.Context) ([]models.Reservation, error)
	ReleaseExpiredReservations(ctx context.Context) ([]models.Reservation, error)
}

type TransactionInput struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    int64
	Type        models.TransactionType
	ReferenceID *uuid.UUID
}

type InventoryTransactionService interface {
	CreateTransaction(ctx context.Context, in TransactionInput) (*models.InventoryTransaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.InventoryTransaction, error)
	GetTransactionsByProduct(ctx context.Context, productID uuid.UUID) ([]models.InventoryTransaction, error)
	GetTransactionsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryTransaction, error)
	GetTransactionsByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.InventoryTransaction, error)
	GetTransactionsByReference(ctx context.Context, referenceID uuid.UUID) ([]models.InventoryTransaction, error)
}
