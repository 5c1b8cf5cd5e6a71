package repo

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"inventory-admin/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	err := r.db.WithContext(ctx).Create(c).Error
	return dupConflict(err, nil, "Category name already exists")
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// 最近 10 个产品预览 + 总数
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		Order("created_at DESC").
		Limit(10).
		Find(&c.Products).Error; err != nil {
		return nil, err
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category_id = ?", id).Count(&n).Error; err != nil {
		return nil, err
	}
	c.Count = &domain.RelCount{Products: n}
	return &c, nil
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context, f domain.CategoryFilter, q domain.ListQuery) ([]domain.Category, int64, error) {
	base := func(ctx context.Context) *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&domain.Category{})
		if f.IsActive != nil {
			tx = tx.Where("is_active = ?", *f.IsActive)
		}
		return tx
	}

	var (
		cats  []domain.Category
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tx := base(gctx).Order("created_at DESC").Offset(q.Skip)
		if q.Take > 0 {
			tx = tx.Limit(q.Take)
		}
		if err := tx.Find(&cats).Error; err != nil {
			return err
		}
		return fillProductCounts(gctx, r.db, "category_id", len(cats), func(i int) string {
			return cats[i].ID
		}, func(i int, n int64) {
			cats[i].Count = &domain.RelCount{Products: n}
		})
	})
	g.Go(func() error { return base(gctx).Count(&total).Error })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return cats, total, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id string, data map[string]any) error {
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Updates(data).Error
	return dupConflict(err, nil, "Category name already exists")
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{}).Error
}

// fillProductCounts categories/suppliers 列表共用的产品分组计数
func fillProductCounts(ctx context.Context, db *gorm.DB, fkCol string, n int, idAt func(int) string, set func(int, int64)) error {
	if n == 0 {
		return nil
	}
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, idAt(i))
	}

	type row struct {
		ID string
		N  int64
	}
	var rows []row
	if err := db.WithContext(ctx).Model(&domain.Product{}).
		Select(fkCol+" AS id, COUNT(*) AS n").
		Where(fkCol+" IN ?", ids).
		Group(fkCol).
		Scan(&rows).Error; err != nil {
		return err
	}

	byID := make(map[string]int64, len(rows))
	for _, rw := range rows {
		byID[rw.ID] = rw.N
	}
	for i := 0; i < n; i++ {
		set(i, byID[idAt(i)])
	}
	return nil
}
