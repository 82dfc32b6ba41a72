package service

import (
	"github.com/HenryBuilds/commercio/internal/repository"
)

// Services собирает все сервисы поверх общего Repository.
type Services struct {
	Categories   CategoryService
	Products     ProductService
	Warehouses   WarehouseService
	Stock        StockService
	Reservations ReservationService
	Transactions InventoryTransactionService
	Orders       OrderService
}

// NewServices — фабрика по умолчанию; events может быть nil,
// тогда события заказов не публикуются.
func NewServices(repo *repository.Repository, events EventBus) *Services {
	return &Services{
		Categories:   NewCategoryService(repo),
		Products:     NewProductService(repo),
		Warehouses:   NewWarehouseService(repo),
		Stock:        NewStockService(repo),
		Reservations: NewReservationService(repo),
		Transactions: NewInventoryTransactionService(repo),
		Orders:       NewOrderService(repo, events),
	}
}
