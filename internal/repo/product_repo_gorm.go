package repo

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"inventory-admin/internal/domain"
)

var productDupMessages = map[string]string{
	"sku":     "Product SKU already exists",
	"barcode": "Product barcode already exists",
}

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	err := r.db.WithContext(ctx).Create(p).Error
	return dupConflict(err, productDupMessages, "Product SKU already exists")
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, f domain.ProductFilter, q domain.ListQuery) ([]domain.Product, int64, error) {
	base := func(ctx context.Context) *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&domain.Product{})
		if f.IsActive != nil {
			tx = tx.Where("is_active = ?", *f.IsActive)
		}
		if f.CategoryID != "" {
			tx = tx.Where("category_id = ?", f.CategoryID)
		}
		if f.SupplierID != "" {
			tx = tx.Where("supplier_id = ?", f.SupplierID)
		}
		return tx
	}

	var (
		products []domain.Product
		total    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tx := base(gctx).
			Preload("Category").
			Preload("Supplier").
			Order("created_at DESC").
			Offset(q.Skip)
		if q.Take > 0 {
			tx = tx.Limit(q.Take)
		}
		return tx.Find(&products).Error
	})
	g.Go(func() error { return base(gctx).Count(&total).Error })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepo) Update(ctx context.Context, id string, data map[string]any) error {
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(data).Error
	return dupConflict(err, productDupMessages, "Product SKU already exists")
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error
}
