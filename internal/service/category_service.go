package service

import (
	"context"
	"strings"
	"time"

	"github.com/HenryBuilds/commercio/internal/models"
	"github.com/HenryBuilds/commercio/internal/repository"

	"github.com/google/uuid"
)

type categoryService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCategoryService(repo *repository.Repository) CategoryService {
	return &categoryService{repo: repo, now: time.Now}
}

func (s *categoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameEmpty
	}

	now := s.now()
	c := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.WithTx(func(tx *repository.Repository) error {
		if existing, err := tx.Categories.GetByName(ctx, name); err != nil {
			return err
		} else if existing != nil {
			return ErrCategoryNameTaken
		}
		return tx.Categories.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.Categories.List(ctx)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	fields := map[string]any{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrNameEmpty
		}
		if existing, err := s.repo.Categories.GetByName(ctx, name); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != id {
			return nil, ErrCategoryNameTaken
		}
		fields["name"] = name
	}

	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}

	if len(fields) == 0 {
		return c, nil
	}
	fields["updated_at"] = s.now()

	if err := s.repo.Categories.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Categories.GetByID(ctx, id)
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}
