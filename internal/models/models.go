package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"type:text;not null;uniqueIndex:ux_categories_name"`
	Description string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	SKU         string     `gorm:"type:text;not null;uniqueIndex:ux_products_sku"`
	Name        string     `gorm:"type:text;not null"`
	Description string     `gorm:"type:text"`
	IsSellable  bool       `gorm:"not null;default:true"`
	IsActive    bool       `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

type Warehouse struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"type:text;not null"`
	ShippingEnabled bool      `gorm:"not null;default:true"`
	IsActive        bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Warehouse) TableName() string { return "warehouses" }

// StockEntry — физический остаток по паре (product, warehouse).
// quantity >= 0 гарантируется CHECK-ограничением в миграции.
type StockEntry struct {
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity    int64     `gorm:"not null;default:0"`

	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (StockEntry) TableName() string { return "stock_entries" }

type ReservationStatus string

const (
	ReservationActive   ReservationStatus = "ACTIVE"
	ReservationConsumed ReservationStatus = "CONSUMED"
	ReservationReleased ReservationStatus = "RELEASED"
)

type Reservation struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index:ix_reservations_product_warehouse"`
	WarehouseID uuid.UUID         `gorm:"type:uuid;not null;index:ix_reservations_product_warehouse"`
	Quantity    int64             `gorm:"not null"`
	ReferenceID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status      ReservationStatus `gorm:"type:text;not null;default:'ACTIVE';index"`
	ExpiresAt   *time.Time        `gorm:"index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (Reservation) TableName() string { return "reservations" }

type TransactionType string

const (
	TransactionReceipt    TransactionType = "RECEIPT"
	TransactionShipment   TransactionType = "SHIPMENT"
	TransactionReturn     TransactionType = "RETURN"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

// InventoryTransaction — неизменяемая запись о движении остатков.
// Quantity всегда > 0; знак определяется типом.
type InventoryTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index:ix_transactions_product_warehouse"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:ix_transactions_product_warehouse"`
	Quantity    int64           `gorm:"not null"`
	Type        TransactionType `gorm:"type:text;not null;index"`
	ReferenceID *uuid.UUID      `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (InventoryTransaction) TableName() string { return "inventory_transactions" }

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsTerminal — из COMPLETED и CANCELLED переходов нет.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status     OrderStatus `gorm:"type:text;not null;default:'CREATED';index"`
	TotalCents int64       `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"` // каскад на позиции
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_product"`
	Quantity       int64     `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	LineTotalCents int64     `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }
