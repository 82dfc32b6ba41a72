package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HenryBuilds/commercio/internal/migrate"
	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"
	"github.com/HenryBuilds/commercio/pkg/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func setupConcurrencyRepo(t *testing.T) *repository.Repository {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.New(db)
}

// Резерв меняет статус между чтением списка и условным потреблением внутри
// отгрузки. Ошибка обязана сообщать актуальный статус, а не ACTIVE из
// прочитанного списка; сама отгрузка при этом откатывается целиком.
func TestShipOrder_ReservationChangedConcurrently(t *testing.T) {
	repo := setupConcurrencyRepo(t)
	ctx := context.Background()

	p1 := &models.Product{SKU: "SKU-SHIP-RACE-1", Name: "p1", IsSellable: true, IsActive: true}
	if err := repo.Products.Create(ctx, p1); err != nil {
		t.Fatalf("create product: %v", err)
	}
	p2 := &models.Product{SKU: "SKU-SHIP-RACE-2", Name: "p2", IsSellable: true, IsActive: true}
	if err := repo.Products.Create(ctx, p2); err != nil {
		t.Fatalf("create product: %v", err)
	}
	w := &models.Warehouse{Name: "Main", ShippingEnabled: true, IsActive: true}
	if err := repo.Warehouses.Create(ctx, w); err != nil {
		t.Fatalf("create warehouse: %v", err)
	}
	if err := repo.Stock.Upsert(ctx, p1.ID, w.ID, 100); err != nil {
		t.Fatalf("upsert stock p1: %v", err)
	}
	if err := repo.Stock.Upsert(ctx, p2.ID, w.ID, 100); err != nil {
		t.Fatalf("upsert stock p2: %v", err)
	}

	// Подставной now: каждый вызов сдвигает время на секунду, чтобы резервы
	// имели строго возрастающий created_at; во взведённом состоянии первый
	// вызов (он случается после потребления первого резерва) снимает второй
	// резерв через отдельное соединение.
	var (
		base   = time.Now()
		calls  int
		armed  bool
		target uuid.UUID
	)
	orders := &orderService{
		repo: repo,
		now: func() time.Time {
			calls++
			if armed {
				armed = false
				if _, err := repo.Reservations.UpdateStatusIf(ctx, target, models.ReservationActive, models.ReservationReleased); err != nil {
					t.Errorf("release target reservation: %v", err)
				}
			}
			return base.Add(time.Duration(calls) * time.Second)
		},
	}

	ord, err := orders.CreateOrder(ctx, uuid.New(), []CreateOrderItem{
		{ProductID: p1.ID, Quantity: 10, UnitPriceCents: 100},
		{ProductID: p2.ID, Quantity: 10, UnitPriceCents: 100},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := orders.ConfirmOrder(ctx, ord.ID, w.ID); err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	if _, err := orders.MarkOrderAsPaid(ctx, ord.ID); err != nil {
		t.Fatalf("MarkOrderAsPaid: %v", err)
	}

	rows, err := repo.Reservations.ListByReference(ctx, ord.ID)
	if err != nil {
		t.Fatalf("ListByReference: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(rows))
	}
	target = rows[1].ID
	armed = true

	_, err = orders.ShipOrder(ctx, ord.ID, w.ID)
	var stateErr *InvalidReservationStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected InvalidReservationStateError, got %v", err)
	}
	if stateErr.ReservationID != target {
		t.Fatalf("error names reservation %s, want %s", stateErr.ReservationID, target)
	}
	if stateErr.Status != models.ReservationReleased {
		t.Fatalf("error must report the current status RELEASED, got %s", stateErr.Status)
	}

	// вся отгрузка откатилась: заказ остался PAID, первый резерв снова ACTIVE,
	// остатки не списаны
	got, err := repo.Orders.GetByID(ctx, ord.ID)
	if err != nil {
		t.Fatalf("GetByID order: %v", err)
	}
	if got.Status != models.OrderStatusPaid {
		t.Fatalf("expected order to stay PAID, got %s", got.Status)
	}

	first, err := repo.Reservations.GetByID(ctx, rows[0].ID)
	if err != nil {
		t.Fatalf("GetByID reservation: %v", err)
	}
	if first.Status != models.ReservationActive {
		t.Fatalf("expected first reservation back to ACTIVE, got %s", first.Status)
	}

	entry, err := repo.Stock.Get(ctx, p1.ID, w.ID)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if entry.Quantity != 100 {
		t.Fatalf("shipment must be rolled back, stock is %d", entry.Quantity)
	}
}
