package repo

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"inventory-admin/internal/domain"
)

type SupplierRepo struct{ db *gorm.DB }

func NewSupplierRepo(db *gorm.DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	err := r.db.WithContext(ctx).Create(s).Error
	return dupConflict(err, nil, "Supplier name already exists")
}

func (r *SupplierRepo) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&s.Products).Error; err != nil {
		return nil, err
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("supplier_id = ?", id).Count(&n).Error; err != nil {
		return nil, err
	}
	s.Count = &domain.RelCount{Products: n}
	return &s, nil
}

func (r *SupplierRepo) FindByName(ctx context.Context, name string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context, f domain.SupplierFilter, q domain.ListQuery) ([]domain.Supplier, int64, error) {
	base := func(ctx context.Context) *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&domain.Supplier{})
		if f.IsActive != nil {
			tx = tx.Where("is_active = ?", *f.IsActive)
		}
		return tx
	}

	var (
		sups  []domain.Supplier
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tx := base(gctx).Order("created_at DESC").Offset(q.Skip)
		if q.Take > 0 {
			tx = tx.Limit(q.Take)
		}
		if err := tx.Find(&sups).Error; err != nil {
			return err
		}
		return fillProductCounts(gctx, r.db, "supplier_id", len(sups), func(i int) string {
			return sups[i].ID
		}, func(i int, n int64) {
			sups[i].Count = &domain.RelCount{Products: n}
		})
	})
	g.Go(func() error { return base(gctx).Count(&total).Error })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return sups, total, nil
}

func (r *SupplierRepo) Update(ctx context.Context, id string, data map[string]any) error {
	err := r.db.WithContext(ctx).Model(&domain.Supplier{}).Where("id = ?", id).Updates(data).Error
	return dupConflict(err, nil, "Supplier name already exists")
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Supplier{}).Error
}
