package service

import (
	"context"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type reservationService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewReservationService(repo *repository.Repository) ReservationService {
	return &reservationService{repo: repo, now: time.Now}
}

func (s *reservationService) CreateReservation(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64, referenceID uuid.UUID, expiresAt *time.Time) (*models.Reservation, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	var created *models.Reservation
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		res, err := createReservationTx(ctx, tx, s.now(), productID, warehouseID, quantity, referenceID, expiresAt)
		if err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createReservationTx выполняет проверку доступности и вставку в рамках одной
// транзакции. Строка остатка блокируется FOR UPDATE, чтобы конкурирующие
// резервы на ту же пару сериализовались и не перерезервировали склад.
func createReservationTx(ctx context.Context, tx *repository.Repository, now time.Time, productID, warehouseID uuid.UUID, quantity int64, referenceID uuid.UUID, expiresAt *time.Time) (*models.Reservation, error) {
	stock, err := tx.Stock.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	var physical int64
	if stock != nil {
		physical = stock.Quantity
	}

	reserved, err := tx.Reservations.SumActiveByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	available := physical - reserved
	if available < quantity {
		return nil, &InsufficientAvailableStockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Available:   available,
			Requested:   quantity,
		}
	}

	res := &models.Reservation{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		ReferenceID: referenceID,
		Status:      models.ReservationActive,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}
	if err := tx.Reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *reservationService) GetReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	res, err := s.repo.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func (s *reservationService) GetReservationsByReference(ctx context.Context, referenceID uuid.UUID) ([]models.Reservation, error) {
	return s.repo.Reservations.ListByReference(ctx, referenceID)
}

func (s *reservationService) GetActiveReservations(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.Reservation, error) {
	return s.repo.Reservations.ListActiveByProductAndWarehouse(ctx, productID, warehouseID)
}

func (s *reservationService) ConsumeReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, s.repo, id, models.ReservationConsumed)
}

func (s *reservationService) ReleaseReservation(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	return s.transition(ctx, s.repo, id, models.ReservationReleased)
}

// transition — условный перевод ACTIVE -> to; терминальный резерв даёт
// InvalidReservationStateError, а не молчаливый успех.
func (s *reservationService) transition(ctx context.Context, repo *repository.Repository, id uuid.UUID, to models.ReservationStatus) (*models.Reservation, error) {
	ok, err := repo.Reservations.UpdateStatusIf(ctx, id, models.ReservationActive, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		res, err := repo.Reservations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return nil, ErrReservationNotFound
		}
		return nil, &InvalidReservationStateError{ReservationID: id, Status: res.Status}
	}
	return repo.Reservations.GetByID(ctx, id)
}

func (s *reservationService) ReleaseReservationsByReference(ctx context.Context, referenceID uuid.UUID) ([]models.Reservation, error) {
	var released []models.Reservation
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		var err error
		released, err = releaseByReferenceTx(ctx, tx, referenceID)
		return err
	})
	return released, err
}

// releaseByReferenceTx снимает все ACTIVE-резервы ссылки; терминальные
// пропускаются, повторный вызов — no-op.
func releaseByReferenceTx(ctx context.Context, tx *repository.Repository, referenceID uuid.UUID) ([]models.Reservation, error) {
	rows, err := tx.Reservations.ListByReference(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	released := make([]models.Reservation, 0, len(rows))
	for _, r := range rows {
		if r.Status != models.ReservationActive {
			continue
		}
		ok, err := tx.Reservations.UpdateStatusIf(ctx, r.ID, models.ReservationActive, models.ReservationReleased)
		if err != nil {
			return nil, err
		}
		if ok {
			r.Status = models.ReservationReleased
			released = append(released, r)
		}
	}
	return released, nil
}

func (s *reservationService) GetExpiredReservations(ctx context.Context) ([]models.Reservation, error) {
	return s.repo.Reservations.ListExpired(ctx, s.now())
}

func (s *reservationService) ReleaseExpiredReservations(ctx context.Context) ([]models.Reservation, error) {
	expired, err := s.repo.Reservations.ListExpired(ctx, s.now())
	if err != nil {
		return nil, err
	}

	released := make([]models.Reservation, 0, len(expired))
	for _, r := range expired {
		// условный апдейт делает повторный запуск безопасным: уже снятый
		// или потреблённый резерв просто пропускается
		ok, err := s.repo.Reservations.UpdateStatusIf(ctx, r.ID, models.ReservationActive, models.ReservationReleased)
		if err != nil {
			return nil, err
		}
		if ok {
			r.Status = models.ReservationReleased
			released = append(released, r)
		}
	}
	return released, nil
}
