package service

import (
	"context"

	"github.com/HenryBuilds/commercio/internal/models"

	"github.com/google/uuid"
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type CategoryService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type ProductInput struct {
	CategoryID  *uuid.UUID
	SKU         string
	Name        string
	Description string
	IsSellable  bool
	IsActive    bool
}

type ProductPatch struct {
	CategoryID  *uuid.UUID
	SKU         *string
	Name        *string
	Description *string
	IsSellable  *bool
	IsActive    *bool
}

type ProductListFilter struct {
	CategoryID *uuid.UUID
	Query      string
	OnlyActive *bool
	Limit      int
	Offset     int
}

type ProductService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type WarehouseInput struct {
	Name            string
	ShippingEnabled bool
	IsActive        bool
}

type WarehousePatch struct {
	Name            *string
	ShippingEnabled *bool
	IsActive        *bool
}

type WarehouseService interface {
	CreateWarehouse(ctx context.Context, in WarehouseInput) (*models.Warehouse, error)
	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	ListWarehouses(ctx context.Context, onlyActive bool) ([]models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id uuid.UUID, patch WarehousePatch) (*models.Warehouse, error)
	ActivateWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	DeactivateWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id uuid.UUID) error
}
