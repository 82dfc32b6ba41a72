package service_test

import (
	"context"
	"testing"

	"github.com/HenryBuilds/commercio/internal/migrate"
	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"
	"github.com/HenryBuilds/commercio/internal/service"
	"github.com/HenryBuilds/commercio/pkg/testutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	repo *repository.Repository
	svc  *service.Services
}

func setupServices(t *testing.T) *fixture {
	t.Helper()
	return setupServicesWith(t, nil)
}

func setupServicesWith(t *testing.T, bus service.EventBus) *fixture {
	t.Helper()
	db := setupDB(t)
	repo := repository.New(db)
	return &fixture{repo: repo, svc: service.NewServices(repo, bus)}
}

func createProduct(t *testing.T, f *fixture, sku string) *models.Product {
	t.Helper()
	p, err := f.svc.Products.CreateProduct(context.Background(), service.ProductInput{
		SKU:        sku,
		Name:       "Product " + sku,
		IsSellable: true,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return p
}

func createWarehouse(t *testing.T, f *fixture, name string) *models.Warehouse {
	t.Helper()
	w, err := f.svc.Warehouses.CreateWarehouse(context.Background(), service.WarehouseInput{
		Name:            name,
		ShippingEnabled: true,
		IsActive:        true,
	})
	if err != nil {
		t.Fatalf("CreateWarehouse: %v", err)
	}
	return w
}
