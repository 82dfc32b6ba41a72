package service

import (
	"errors"
	"fmt"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrWarehouseNotFound   = errors.New("warehouse not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrCategoryNameTaken = errors.New("category name already taken")
	ErrSKUAlreadyExists  = errors.New("sku already exists")

	ErrNameEmpty          = errors.New("name must not be empty")
	ErrSKUEmpty           = errors.New("sku must not be empty")
	ErrEmptyItems         = errors.New("order must contain at least one item")
	ErrQuantityInvalid    = errors.New("quantity must be > 0")
	ErrPriceInvalid       = errors.New("unit price must not be negative")
	ErrNegativeQuantity   = errors.New("stock quantity must not be negative")
	ErrUnknownTransaction = errors.New("unknown transaction type")
)

// InsufficientStockError — физический остаток ушёл бы в минус.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Current     int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s in warehouse %s: current %d, requested %d",
		e.ProductID, e.WarehouseID, e.Current, e.Requested)
}

// InsufficientAvailableStockError — запрошенный резерв превышает
// остаток за вычетом активных резервов.
type InsufficientAvailableStockError struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Available   int64
	Requested   int64
}

func (e *InsufficientAvailableStockError) Error() string {
	return fmt.Sprintf("insufficient available stock for product %s in warehouse %s: available %d, requested %d",
		e.ProductID, e.WarehouseID, e.Available, e.Requested)
}

type InvalidOrderStateError struct {
	OrderID  uuid.UUID
	Current  models.OrderStatus
	Required models.OrderStatus
}

func (e *InvalidOrderStateError) Error() string {
	if e.Required == "" {
		return fmt.Sprintf("order %s: no transition allowed from status %s", e.OrderID, e.Current)
	}
	return fmt.Sprintf("order %s: status is %s, required %s", e.OrderID, e.Current, e.Required)
}

type InvalidReservationStateError struct {
	ReservationID uuid.UUID
	Status        models.ReservationStatus
}

func (e *InvalidReservationStateError) Error() string {
	return fmt.Sprintf("reservation %s: status is %s, required %s",
		e.ReservationID, e.Status, models.ReservationActive)
}
