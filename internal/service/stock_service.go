package service

import (
	"context"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type stockService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewStockService(repo *repository.Repository) StockService {
	return &stockService{repo: repo, now: time.Now}
}

func (s *stockService) checkPairExists(ctx context.Context, productID, warehouseID uuid.UUID) error {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	w, err := s.repo.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return ErrWarehouseNotFound
	}
	return nil
}

func (s *stockService) SetStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (*models.StockEntry, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if err := s.checkPairExists(ctx, productID, warehouseID); err != nil {
		return nil, err
	}

	if err := s.repo.Stock.Upsert(ctx, productID, warehouseID, quantity); err != nil {
		return nil, err
	}
	return s.repo.Stock.Get(ctx, productID, warehouseID)
}

func (s *stockService) GetStock(ctx context.Context, productID, warehouseID uuid.UUID) (*models.StockEntry, error) {
	return s.repo.Stock.Get(ctx, productID, warehouseID)
}

func (s *stockService) GetStockByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockEntry, error) {
	return s.repo.Stock.ListByProduct(ctx, productID)
}

func (s *stockService) GetStockByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.StockEntry, error) {
	return s.repo.Stock.ListByWarehouse(ctx, warehouseID)
}

func (s *stockService) AdjustStock(ctx context.Context, productID, warehouseID uuid.UUID, delta int64) (*models.StockEntry, error) {
	if err := s.checkPairExists(ctx, productID, warehouseID); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		ok, err := tx.Stock.AdjustQuantity(ctx, productID, warehouseID, delta)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		// Строки ещё нет либо результат ушёл бы в минус.
		cur, err := tx.Stock.GetForUpdate(ctx, productID, warehouseID)
		if err != nil {
			return err
		}

		var current int64
		if cur != nil {
			current = cur.Quantity
		}
		if current+delta < 0 {
			return &InsufficientStockError{
				ProductID:   productID,
				WarehouseID: warehouseID,
				Current:     current,
				Requested:   delta,
			}
		}
		return tx.Stock.Upsert(ctx, productID, warehouseID, current+delta)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Stock.Get(ctx, productID, warehouseID)
}

func (s *stockService) IncreaseStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (*models.StockEntry, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	return s.AdjustStock(ctx, productID, warehouseID, quantity)
}

func (s *stockService) DecreaseStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (*models.StockEntry, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	return s.AdjustStock(ctx, productID, warehouseID, -quantity)
}

func (s *stockService) GetTotalStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	return s.repo.Stock.SumByProduct(ctx, productID)
}
