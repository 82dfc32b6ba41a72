package service

import (
	"context"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
)

// Срок жизни резерва, создаваемого при подтверждении заказа.
const reservationTTL = time.Hour

type CreateOrderItem struct {
	ProductID      uuid.UUID
	Quantity       int64
	UnitPriceCents int64
}

type ReturnItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

type OrderService interface {
	CreateOrder(ctx context.Context, customerID uuid.UUID, items []CreateOrderItem) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	ConfirmOrder(ctx context.Context, id, warehouseID uuid.UUID) (*models.Order, error)
	MarkOrderAsPaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ShipOrder(ctx context.Context, id, warehouseID uuid.UUID) (*models.Order, error)
	CompleteOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ReturnOrderItems(ctx context.Context, orderID uuid.UUID, items []ReturnItem, warehouseID uuid.UUID) error
}
