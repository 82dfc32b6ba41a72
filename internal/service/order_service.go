package service

import (
	"context"
	"errors"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo   *repository.Repository
	events EventBus
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, events EventBus) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, customerID uuid.UUID, items []CreateOrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	var (
		now     = s.now()
		itemsDB []models.OrderItem
		total   int64
	)

	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
		if it.UnitPriceCents < 0 {
			return nil, ErrPriceInvalid
		}

		line := it.Quantity * it.UnitPriceCents
		total += line

		itemsDB = append(itemsDB, models.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			LineTotalCents: line,
			CreatedAt:      now,
		})
	}

	order := &models.Order{
		CustomerID: customerID,
		Status:     models.OrderStatusCreated,
		TotalCents: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for i := range itemsDB {
			itemsDB[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, itemsDB); err != nil {
			return err
		}

		full, err := tx.Orders.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = full
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(itemsDB))
		for _, it := range itemsDB {
			evItems = append(evItems, OrderItemEvent{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				PriceCents: it.UnitPriceCents,
				LineTotal:  it.LineTotalCents,
			})
		}
		_ = s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Items:      evItems,
			TotalCents: order.TotalCents,
			CreatedAt:  order.CreatedAt,
		})
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) GetOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return s.repo.Orders.ListByCustomer(ctx, customerID)
}

// ConfirmOrder резервирует каждую позицию заказа. Частично подтверждённого
// заказа не бывает: если резерв очередной позиции не прошёл, уже созданные
// резервы снимаются, статус остаётся CREATED.
func (s *orderService) ConfirmOrder(ctx context.Context, id, warehouseID uuid.UUID) (*models.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.Status != models.OrderStatusCreated {
		return nil, &InvalidOrderStateError{OrderID: id, Current: ord.Status, Required: models.OrderStatusCreated}
	}

	expiresAt := s.now().Add(reservationTTL)

	var created []uuid.UUID
	for _, it := range ord.Items {
		var res *models.Reservation
		err := s.repo.WithTx(func(tx *repository.Repository) error {
			var err error
			res, err = createReservationTx(ctx, tx, s.now(), it.ProductID, warehouseID, it.Quantity, ord.ID, &expiresAt)
			return err
		})
		if err != nil {
			return nil, errors.Join(err, s.compensateReservations(ctx, created))
		}
		created = append(created, res.ID)
	}

	ok, err := s.repo.Orders.UpdateStatusIf(ctx, id, models.OrderStatusCreated, models.OrderStatusConfirmed)
	if err != nil {
		return nil, errors.Join(err, s.compensateReservations(ctx, created))
	}
	if !ok {
		// статус сменили конкурентно, пока мы резервировали
		if err := s.compensateReservations(ctx, created); err != nil {
			return nil, err
		}
		cur, err := s.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidOrderStateError{OrderID: id, Current: cur.Status, Required: models.OrderStatusCreated}
	}

	if s.events != nil {
		_ = s.events.PublishOrderConfirmed(ctx, OrderConfirmedEvent{
			OrderID:     id,
			WarehouseID: warehouseID,
			ConfirmedAt: s.now(),
		})
	}

	return s.GetOrder(ctx, id)
}

// compensateReservations снимает уже созданные резервы после неудачного
// подтверждения; ошибки снятия возвращаются накопленными.
func (s *orderService) compensateReservations(ctx context.Context, ids []uuid.UUID) error {
	var errs []error
	for _, rid := range ids {
		if _, err := s.repo.Reservations.UpdateStatusIf(ctx, rid, models.ReservationActive, models.ReservationReleased); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *orderService) MarkOrderAsPaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusConfirmed, models.OrderStatusPaid)
}

// ShipOrder потребляет резервы заказа и списывает физический остаток
// SHIPMENT-транзакциями. Потребление резерва и его транзакция — единое целое:
// вся отгрузка идёт в одной транзакции БД, при любом сбое заказ остаётся PAID,
// а резервы — ACTIVE.
func (s *orderService) ShipOrder(ctx context.Context, id, warehouseID uuid.UUID) (*models.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.Status != models.OrderStatusPaid {
		return nil, &InvalidOrderStateError{OrderID: id, Current: ord.Status, Required: models.OrderStatusPaid}
	}

	err = s.repo.WithTx(func(tx *repository.Repository) error {
		rows, err := tx.Reservations.ListByReference(ctx, ord.ID)
		if err != nil {
			return err
		}

		for _, r := range rows {
			if r.Status != models.ReservationActive {
				continue
			}

			ok, err := tx.Reservations.UpdateStatusIf(ctx, r.ID, models.ReservationActive, models.ReservationConsumed)
			if err != nil {
				return err
			}
			if !ok {
				// статус поменяли конкурентно после чтения списка,
				// в ошибке сообщаем актуальный
				cur, err := tx.Reservations.GetByID(ctx, r.ID)
				if err != nil {
					return err
				}
				if cur == nil {
					return ErrReservationNotFound
				}
				return &InvalidReservationStateError{ReservationID: r.ID, Status: cur.Status}
			}

			refID := ord.ID
			if _, err := createTransactionTx(ctx, tx, s.now(), TransactionInput{
				ProductID:   r.ProductID,
				WarehouseID: r.WarehouseID,
				Quantity:    r.Quantity,
				Type:        models.TransactionShipment,
				ReferenceID: &refID,
			}); err != nil {
				return err
			}
		}

		ok, err := tx.Orders.UpdateStatusIf(ctx, id, models.OrderStatusPaid, models.OrderStatusShipped)
		if err != nil {
			return err
		}
		if !ok {
			cur, err := tx.Orders.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return &InvalidOrderStateError{OrderID: id, Current: cur.Status, Required: models.OrderStatusPaid}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderShipped(ctx, OrderShippedEvent{
			OrderID:     id,
			WarehouseID: warehouseID,
			ShippedAt:   s.now(),
		})
	}

	return s.GetOrder(ctx, id)
}

func (s *orderService) CompleteOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.transition(ctx, id, models.OrderStatusShipped, models.OrderStatusCompleted)
}

// CancelOrder допустим из любого нетерминального статуса; резервы заказа
// снимаются в той же транзакции, что и смена статуса.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.Status.IsTerminal() {
		return nil, &InvalidOrderStateError{OrderID: id, Current: ord.Status}
	}

	err = s.repo.WithTx(func(tx *repository.Repository) error {
		if _, err := releaseByReferenceTx(ctx, tx, ord.ID); err != nil {
			return err
		}

		ok, err := tx.Orders.UpdateStatusIf(ctx, id, ord.Status, models.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			cur, err := tx.Orders.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return &InvalidOrderStateError{OrderID: id, Current: cur.Status, Required: ord.Status}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderCancelled(ctx, OrderCancelledEvent{
			OrderID:     id,
			CancelledAt: s.now(),
		})
	}

	return s.GetOrder(ctx, id)
}

// ReturnOrderItems создаёт RETURN-транзакции по возвращаемым позициям.
// Статус заказа не меняется; частичные и повторные возвраты допустимы.
func (s *orderService) ReturnOrderItems(ctx context.Context, orderID uuid.UUID, items []ReturnItem, warehouseID uuid.UUID) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}

	ord, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if ord.Status != models.OrderStatusShipped && ord.Status != models.OrderStatusCompleted {
		return &InvalidOrderStateError{OrderID: orderID, Current: ord.Status, Required: models.OrderStatusShipped}
	}

	for _, it := range items {
		if it.Quantity <= 0 {
			return ErrQuantityInvalid
		}
	}

	return s.repo.WithTx(func(tx *repository.Repository) error {
		for _, it := range items {
			refID := ord.ID
			if _, err := createTransactionTx(ctx, tx, s.now(), TransactionInput{
				ProductID:   it.ProductID,
				WarehouseID: warehouseID,
				Quantity:    it.Quantity,
				Type:        models.TransactionReturn,
				ReferenceID: &refID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *orderService) transition(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error) {
	ord, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord.Status != from {
		return nil, &InvalidOrderStateError{OrderID: id, Current: ord.Status, Required: from}
	}

	ok, err := s.repo.Orders.UpdateStatusIf(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		cur, err := s.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidOrderStateError{OrderID: id, Current: cur.Status, Required: from}
	}

	return s.GetOrder(ctx, id)
}
