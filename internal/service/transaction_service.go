package service

import (
	"context"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type transactionService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewInventoryTransactionService(repo *repository.Repository) InventoryTransactionService {
	return &transactionService{repo: repo, now: time.Now}
}

func (s *transactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*models.InventoryTransaction, error) {
	var created *models.InventoryTransaction
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		t, err := createTransactionTx(ctx, tx, s.now(), in)
		if err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createTransactionTx пишет запись журнала и применяет её к остаткам в одной
// транзакции: если списание не проходит, запись не фиксируется.
func createTransactionTx(ctx context.Context, tx *repository.Repository, now time.Time, in TransactionInput) (*models.InventoryTransaction, error) {
	if in.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	switch in.Type {
	case models.TransactionReceipt, models.TransactionShipment, models.TransactionReturn, models.TransactionAdjustment:
	default:
		return nil, ErrUnknownTransaction
	}

	t := &models.InventoryTransaction{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Type:        in.Type,
		ReferenceID: in.ReferenceID,
		CreatedAt:   now,
	}
	if err := tx.Transactions.Create(ctx, t); err != nil {
		return nil, err
	}

	switch in.Type {
	case models.TransactionReceipt, models.TransactionReturn:
		if err := tx.Stock.AddQuantity(ctx, in.ProductID, in.WarehouseID, in.Quantity); err != nil {
			return nil, err
		}

	case models.TransactionShipment:
		ok, err := tx.Stock.RemoveQuantity(ctx, in.ProductID, in.WarehouseID, in.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			cur, err := tx.Stock.Get(ctx, in.ProductID, in.WarehouseID)
			if err != nil {
				return nil, err
			}
			var current int64
			if cur != nil {
				current = cur.Quantity
			}
			return nil, &InsufficientStockError{
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				Current:     current,
				Requested:   in.Quantity,
			}
		}

	case models.TransactionAdjustment:
		// абсолютная установка, не дельта
		if err := tx.Stock.Upsert(ctx, in.ProductID, in.WarehouseID, in.Quantity); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*models.InventoryTransaction, error) {
	t, err := s.repo.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransactionNotFound
	}
	return t, nil
}

func (s *transactionService) GetTransactionsByProduct(ctx context.Context, productID uuid.UUID) ([]models.InventoryTransaction, error) {
	return s.repo.Transactions.ListByProduct(ctx, productID)
}

func (s *transactionService) GetTransactionsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.InventoryTransaction, error) {
	return s.repo.Transactions.ListByWarehouse(ctx, warehouseID)
}

func (s *transactionService) GetTransactionsByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) ([]models.InventoryTransaction, error) {
	return s.repo.Transactions.ListByProductAndWarehouse(ctx, productID, warehouseID)
}

func (s *transactionService) GetTransactionsByReference(ctx context.Context, referenceID uuid.UUID) ([]models.InventoryTransaction, error) {
	return s.repo.Transactions.ListByReference(ctx, referenceID)
}
