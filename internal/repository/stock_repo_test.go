package repository_test

import (
	"context"
	"testing"

	"github.com/HenryBuilds/commercio/internal/migrate"
	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"
	"github.com/HenryBuilds/commercio/pkg/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

func seedPair(t *testing.T, repo *repository.Repository) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	p := &models.Product{SKU: "SKU-" + uuid.NewString()[:8], Name: "test product", IsActive: true}
	if err := repo.Products.Create(ctx, p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	w := &models.Warehouse{Name: "wh-" + uuid.NewString()[:8], IsActive: true}
	if err := repo.Warehouses.Create(ctx, w); err != nil {
		t.Fatalf("create warehouse: %v", err)
	}
	return p.ID, w.ID
}

func TestStockRepo_UpsertAndAdd(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid := seedPair(t, repo)

	if err := repo.Stock.Upsert(ctx, pid, wid, 10); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	// повторный upsert перезаписывает, а не прибавляет
	if err := repo.Stock.Upsert(ctx, pid, wid, 7); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	entry, err := repo.Stock.Get(ctx, pid, wid)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Quantity != 7 {
		t.Fatalf("expected 7, got %d", entry.Quantity)
	}

	if err := repo.Stock.AddQuantity(ctx, pid, wid, 3); err != nil {
		t.Fatalf("AddQuantity: %v", err)
	}
	entry, _ = repo.Stock.Get(ctx, pid, wid)
	if entry.Quantity != 10 {
		t.Fatalf("expected 10, got %d", entry.Quantity)
	}
}

func TestStockRepo_AddCreatesMissingRow(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid := seedPair(t, repo)

	if err := repo.Stock.AddQuantity(ctx, pid, wid, 5); err != nil {
		t.Fatalf("AddQuantity: %v", err)
	}
	entry, err := repo.Stock.Get(ctx, pid, wid)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry == nil || entry.Quantity != 5 {
		t.Fatalf("expected row with 5, got %+v", entry)
	}
}

func TestStockRepo_RemoveQuantityGuard(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid := seedPair(t, repo)

	if err := repo.Stock.Upsert(ctx, pid, wid, 10); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	ok, err := repo.Stock.RemoveQuantity(ctx, pid, wid, 4)
	if err != nil || !ok {
		t.Fatalf("RemoveQuantity 4: ok=%v err=%v", ok, err)
	}

	// больше остатка — отказ без изменения строки
	ok, err = repo.Stock.RemoveQuantity(ctx, pid, wid, 100)
	if err != nil {
		t.Fatalf("RemoveQuantity 100: %v", err)
	}
	if ok {
		t.Fatal("expected guard to reject over-removal")
	}
	entry, _ := repo.Stock.Get(ctx, pid, wid)
	if entry.Quantity != 6 {
		t.Fatalf("expected 6, got %d", entry.Quantity)
	}

	// по несуществующей паре guard тоже срабатывает
	ok, err = repo.Stock.RemoveQuantity(ctx, uuid.New(), wid, 1)
	if err != nil {
		t.Fatalf("RemoveQuantity missing: %v", err)
	}
	if ok {
		t.Fatal("expected no rows affected for missing pair")
	}
}

func TestStockRepo_AdjustQuantityGuard(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid := seedPair(t, repo)

	if err := repo.Stock.Upsert(ctx, pid, wid, 10); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	ok, err := repo.Stock.AdjustQuantity(ctx, pid, wid, -10)
	if err != nil || !ok {
		t.Fatalf("AdjustQuantity -10: ok=%v err=%v", ok, err)
	}
	entry, _ := repo.Stock.Get(ctx, pid, wid)
	if entry.Quantity != 0 {
		t.Fatalf("expected 0, got %d", entry.Quantity)
	}

	ok, err = repo.Stock.AdjustQuantity(ctx, pid, wid, -1)
	if err != nil {
		t.Fatalf("AdjustQuantity -1: %v", err)
	}
	if ok {
		t.Fatal("expected guard to reject negative result")
	}
}

func TestStockRepo_SumByProduct(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid1 := seedPair(t, repo)

	w2 := &models.Warehouse{Name: "wh-" + uuid.NewString()[:8], IsActive: true}
	if err := repo.Warehouses.Create(ctx, w2); err != nil {
		t.Fatalf("create warehouse: %v", err)
	}

	sum, err := repo.Stock.SumByProduct(ctx, pid)
	if err != nil {
		t.Fatalf("SumByProduct empty: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected 0 without rows, got %d", sum)
	}

	if err := repo.Stock.Upsert(ctx, pid, wid1, 30); err != nil {
		t.Fatalf("Upsert w1: %v", err)
	}
	if err := repo.Stock.Upsert(ctx, pid, w2.ID, 70); err != nil {
		t.Fatalf("Upsert w2: %v", err)
	}

	sum, err = repo.Stock.SumByProduct(ctx, pid)
	if err != nil {
		t.Fatalf("SumByProduct: %v", err)
	}
	if sum != 100 {
		t.Fatalf("expected 100, got %d", sum)
	}
}

func TestReservationRepo_UpdateStatusIf(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid := seedPair(t, repo)

	res := &models.Reservation{
		ProductID:   pid,
		WarehouseID: wid,
		Quantity:    5,
		Status:      models.ReservationActive,
		ReferenceID: uuid.New(),
	}
	if err := repo.Reservations.Create(ctx, res); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationActive, models.ReservationConsumed)
	if err != nil || !ok {
		t.Fatalf("ACTIVE->CONSUMED: ok=%v err=%v", ok, err)
	}

	// второй переход из того же исходного статуса не проходит
	ok, err = repo.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationActive, models.ReservationReleased)
	if err != nil {
		t.Fatalf("repeat transition: %v", err)
	}
	if ok {
		t.Fatal("expected conditional update to miss")
	}

	got, err := repo.Reservations.GetByID(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.ReservationConsumed {
		t.Fatalf("expected CONSUMED, got %s", got.Status)
	}
}

func TestReservationRepo_SumActive(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	pid, wid := seedPair(t, repo)

	mk := func(q int64, status models.ReservationStatus) {
		t.Helper()
		r := &models.Reservation{
			ProductID:   pid,
			WarehouseID: wid,
			Quantity:    q,
			Status:      status,
			ReferenceID: uuid.New(),
		}
		if err := repo.Reservations.Create(ctx, r); err != nil {
			t.Fatalf("create reservation: %v", err)
		}
	}

	mk(10, models.ReservationActive)
	mk(20, models.ReservationActive)
	mk(99, models.ReservationReleased)
	mk(99, models.ReservationConsumed)

	sum, err := repo.Reservations.SumActiveByProductAndWarehouse(ctx, pid, wid)
	if err != nil {
		t.Fatalf("SumActiveByProductAndWarehouse: %v", err)
	}
	if sum != 30 {
		t.Fatalf("expected 30, got %d", sum)
	}
}
