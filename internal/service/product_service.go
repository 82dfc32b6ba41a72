package service

import (
	"context"
	"strings"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type productService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewProductService(repo *repository.Repository) ProductService {
	return &productService{repo: repo, now: time.Now}
}

func (s *productService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return nil, ErrSKUEmpty
	}

	if in.CategoryID != nil {
		c, err := s.repo.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
	}

	now := s.now()
	p := &models.Product{
		CategoryID:  in.CategoryID,
		SKU:         sku,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsSellable:  in.IsSellable,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		if existing, err := tx.Products.GetBySKU(ctx, sku); err != nil {
			return err
		} else if existing != nil {
			return ErrSKUAlreadyExists
		}
		return tx.Products.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *productService) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	p, err := s.repo.Products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *productService) ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.Products.List(ctx, repository.ProductListFilter{
		CategoryID: f.CategoryID,
		Query:      f.Query,
		OnlyActive: f.OnlyActive,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}

	if patch.SKU != nil {
		sku := strings.TrimSpace(*patch.SKU)
		if sku == "" {
			return nil, ErrSKUEmpty
		}
		if existing, err := s.repo.Products.GetBySKU(ctx, sku); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, ErrSKUAlreadyExists
		}
		fields["sku"] = sku
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		fields["name"] = name
	}

	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}

	if patch.CategoryID != nil {
		c, err := s.repo.Categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *patch.CategoryID
	}

	if patch.IsSellable != nil {
		fields["is_sellable"] = *patch.IsSellable
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if len(fields) == 0 {
		return p, nil
	}
	fields["updated_at"] = s.now()

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
