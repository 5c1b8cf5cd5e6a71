package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-admin/internal/domain"
	"inventory-admin/pkg/utils"
)

type SupplierService struct {
	repo domain.SupplierRepository
	log  *zap.Logger
}

func NewSupplierService(repo domain.SupplierRepository, log *zap.Logger) *SupplierService {
	return &SupplierService{repo: repo, log: log}
}

type CreateSupplierInput struct {
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"isActive"`
}

type UpdateSupplierInput struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"isActive"`
}

func (s *SupplierService) Create(ctx context.Context, in CreateSupplierInput) (*domain.Supplier, error) {
	existing, err := s.repo.FindByName(ctx, in.Name)
	if err != nil {
		s.log.Error("check supplier name failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Message: "Supplier name already exists"}
	}

	sup := &domain.Supplier{
		ID:            utils.NewID(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		IsActive:      true,
	}
	if in.IsActive != nil {
		sup.IsActive = *in.IsActive
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.log.Error("create supplier failed", zap.Error(err))
		return nil, err
	}
	return s.FindOne(ctx, sup.ID)
}

func (s *SupplierService) List(ctx context.Context, f domain.SupplierFilter, q domain.ListQuery) (*domain.ListResult[domain.Supplier], error) {
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		s.log.Error("list suppliers failed", zap.Error(err))
		return nil, err
	}
	return domain.NewListResult(items, total, q), nil
}

func (s *SupplierService) FindOne(ctx context.Context, id string) (*domain.Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("find supplier failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if sup == nil {
		return nil, &domain.NotFoundError{Entity: "Supplier", ID: id}
	}
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, in UpdateSupplierInput) (*domain.Supplier, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != current.Name {
		existing, err := s.repo.FindByName(ctx, *in.Name)
		if err != nil {
			s.log.Error("check supplier name failed", zap.Error(err))
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.ConflictError{Message: "Supplier name already exists"}
		}
	}

	data := map[string]any{}
	if in.Name != nil && *in.Name != current.Name {
		data["name"] = *in.Name
	}
	setIf(data, "contact_person", in.ContactPerson)
	setIf(data, "phone", in.Phone)
	setIf(data, "email", in.Email)
	setIf(data, "address", in.Address)
	setIf(data, "is_active", in.IsActive)

	if len(data) > 0 {
		if err := s.repo.Update(ctx, id, data); err != nil {
			if domain.IsConflict(err) {
				return nil, err
			}
			s.log.Error("update supplier failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

func (s *SupplierService) Remove(ctx context.Context, id string) (string, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete supplier failed", zap.String("id", id), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Supplier with ID %s deleted successfully", id), nil
}
