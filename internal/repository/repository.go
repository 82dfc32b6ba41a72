package repository

import "gorm.io/gorm"

type Repository struct {
	DB           *gorm.DB
	Categories   CategoryRepo
	Products     ProductRepo
	Warehouses   WarehouseRepo
	Stock        StockRepo
	Reservations ReservationRepo
	Transactions TransactionRepo
	Orders       OrderRepo
	OrderItems   OrderItemRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		Categories:   NewCategoryRepo(db),
		Products:     NewProductRepo(db),
		Warehouses:   NewWarehouseRepo(db),
		Stock:        NewStockRepo(db),
		Reservations: NewReservationRepo(db),
		Transactions: NewTransactionRepo(db),
		Orders:       NewOrderRepo(db),
		OrderItems:   NewOrderItemRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Глобальная транзакция на весь набор репо
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
