package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-admin/internal/domain"
	"inventory-admin/pkg/utils"
)

type CategoryService struct {
	repo domain.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo domain.CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	existing, err := s.repo.FindByName(ctx, in.Name)
	if err != nil {
		s.log.Error("check category name failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Message: "Category name already exists"}
	}

	c := &domain.Category{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.log.Error("create category failed", zap.Error(err))
		return nil, err
	}
	return s.FindOne(ctx, c.ID)
}

func (s *CategoryService) List(ctx context.Context, f domain.CategoryFilter, q domain.ListQuery) (*domain.ListResult[domain.Category], error) {
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		s.log.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	return domain.NewListResult(items, total, q), nil
}

func (s *CategoryService) FindOne(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("find category failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "Category", ID: id}
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in UpdateCategoryInput) (*domain.Category, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != current.Name {
		existing, err := s.repo.FindByName(ctx, *in.Name)
		if err != nil {
			s.log.Error("check category name failed", zap.Error(err))
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.ConflictError{Message: "Category name already exists"}
		}
	}

	data := map[string]any{}
	if in.Name != nil && *in.Name != current.Name {
		data["name"] = *in.Name
	}
	setIf(data, "description", in.Description)
	setIf(data, "is_active", in.IsActive)

	if len(data) > 0 {
		if err := s.repo.Update(ctx, id, data); err != nil {
			if domain.IsConflict(err) {
				return nil, err
			}
			s.log.Error("update category failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

func (s *CategoryService) Remove(ctx context.Context, id string) (string, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete category failed", zap.String("id", id), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Category with ID %s deleted successfully", id), nil
}
