package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/HenryBuilds/commercio/internal/service"

	"github.com/google/uuid"
)

func TestStockService_SetStock(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-SET-001")
	w := createWarehouse(t, f, "Main")

	entry, err := f.svc.Stock.SetStock(ctx, p.ID, w.ID, 100)
	if err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if entry.Quantity != 100 {
		t.Fatalf("expected quantity 100, got %d", entry.Quantity)
	}

	// replace, not add
	entry, err = f.svc.Stock.SetStock(ctx, p.ID, w.ID, 40)
	if err != nil {
		t.Fatalf("SetStock replace: %v", err)
	}
	if entry.Quantity != 40 {
		t.Fatalf("expected quantity 40, got %d", entry.Quantity)
	}
}

func TestStockService_SetStock_Validation(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-SET-002")
	w := createWarehouse(t, f, "Main")

	if _, err := f.svc.Stock.SetStock(ctx, p.ID, w.ID, -1); !errors.Is(err, service.ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}

	if _, err := f.svc.Stock.SetStock(ctx, uuid.New(), w.ID, 10); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if _, err := f.svc.Stock.SetStock(ctx, p.ID, uuid.New(), 10); !errors.Is(err, service.ErrWarehouseNotFound) {
		t.Fatalf("expected ErrWarehouseNotFound, got %v", err)
	}
}

func TestStockService_AdjustStock(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-ADJ-001")
	w := createWarehouse(t, f, "Main")

	if _, err := f.svc.Stock.SetStock(ctx, p.ID, w.ID, 100); err != nil {
		t.Fatalf("SetStock: %v", err)
	}

	entry, err := f.svc.Stock.AdjustStock(ctx, p.ID, w.ID, 50)
	if err != nil {
		t.Fatalf("AdjustStock +50: %v", err)
	}
	if entry.Quantity != 150 {
		t.Fatalf("expected 150, got %d", entry.Quantity)
	}

	entry, err = f.svc.Stock.AdjustStock(ctx, p.ID, w.ID, -30)
	if err != nil {
		t.Fatalf("AdjustStock -30: %v", err)
	}
	if entry.Quantity != 120 {
		t.Fatalf("expected 120, got %d", entry.Quantity)
	}
}

func TestStockService_AdjustStock_MissingEntryTreatedAsZero(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-ADJ-002")
	w := createWarehouse(t, f, "Main")

	entry, err := f.svc.Stock.AdjustStock(ctx, p.ID, w.ID, 25)
	if err != nil {
		t.Fatalf("AdjustStock on missing entry: %v", err)
	}
	if entry.Quantity != 25 {
		t.Fatalf("expected 25, got %d", entry.Quantity)
	}
}

func TestStockService_AdjustStock_Insufficient(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-ADJ-003")
	w := createWarehouse(t, f, "Main")

	if _, err := f.svc.Stock.SetStock(ctx, p.ID, w.ID, 50); err != nil {
		t.Fatalf("SetStock: %v", err)
	}

	_, err := f.svc.Stock.AdjustStock(ctx, p.ID, w.ID, -1000)
	var insErr *service.InsufficientStockError
	if !errors.As(err, &insErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insErr.Current != 50 || insErr.Requested != -1000 {
		t.Fatalf("error detail mismatch: %+v", insErr)
	}

	// остаток не изменился
	entry, err := f.svc.Stock.GetStock(ctx, p.ID, w.ID)
	if err != nil {
		t.Fatalf("GetStock: %v", err)
	}
	if entry.Quantity != 50 {
		t.Fatalf("stock changed after failed adjust: %d", entry.Quantity)
	}
}

func TestStockService_GetTotalStock(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-TOT-001")
	w1 := createWarehouse(t, f, "North")
	w2 := createWarehouse(t, f, "South")

	total, err := f.svc.Stock.GetTotalStock(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetTotalStock empty: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %d", total)
	}

	if _, err := f.svc.Stock.SetStock(ctx, p.ID, w1.ID, 30); err != nil {
		t.Fatalf("SetStock w1: %v", err)
	}
	if _, err := f.svc.Stock.SetStock(ctx, p.ID, w2.ID, 70); err != nil {
		t.Fatalf("SetStock w2: %v", err)
	}

	total, err = f.svc.Stock.GetTotalStock(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetTotalStock: %v", err)
	}
	if total != 100 {
		t.Fatalf("expected 100, got %d", total)
	}
}

func TestStockService_IncreaseDecrease(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()

	p := createProduct(t, f, "SKU-INC-001")
	w := createWarehouse(t, f, "Main")

	if _, err := f.svc.Stock.IncreaseStock(ctx, p.ID, w.ID, 0); !errors.Is(err, service.ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}

	entry, err := f.svc.Stock.IncreaseStock(ctx, p.ID, w.ID, 10)
	if err != nil {
		t.Fatalf("IncreaseStock: %v", err)
	}
	if entry.Quantity != 10 {
		t.Fatalf("expected 10, got %d", entry.Quantity)
	}

	entry, err = f.svc.Stock.DecreaseStock(ctx, p.ID, w.ID, 4)
	if err != nil {
		t.Fatalf("DecreaseStock: %v", err)
	}
	if entry.Quantity != 6 {
		t.Fatalf("expected 6, got %d", entry.Quantity)
	}
}
