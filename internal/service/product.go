package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"inventory-admin/internal/domain"
	"inventory-admin/pkg/utils"
)

type ProductService struct {
	repo    domain.ProductRepository
	storage ObjectStorage
	log     *zap.Logger
}

func NewProductService(repo domain.ProductRepository, storage ObjectStorage, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, storage: storage, log: log}
}

type CreateProductInput struct {
	Name        string   `json:"name" form:"name" binding:"required"`
	Description *string  `json:"description" form:"description"`
	Price       float64  `json:"price" form:"price" binding:"gte=0"`
	Stock       int      `json:"stock" form:"stock" binding:"gte=0"`
	SKU         string   `json:"sku" form:"sku" binding:"required"`
	Barcode     *string  `json:"barcode" form:"barcode"`
	Weight      *float64 `json:"weight" form:"weight"`
	Unit        *string  `json:"unit" form:"unit"`
	ExpiryDate  *string  `json:"expiryDate" form:"expiryDate"`
	IsActive    *bool    `json:"isActive" form:"isActive"`
	CategoryID  *string  `json:"categoryId" form:"categoryId"`
	SupplierID  *string  `json:"supplierId" form:"supplierId"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name" form:"name"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock" form:"stock" binding:"omitempty,gte=0"`
	SKU         *string  `json:"sku" form:"sku"`
	Barcode     *string  `json:"barcode" form:"barcode"`
	Weight      *float64 `json:"weight" form:"weight"`
	Unit        *string  `json:"unit" form:"unit"`
	ExpiryDate  *string  `json:"expiryDate" form:"expiryDate"`
	IsActive    *bool    `json:"isActive" form:"isActive"`
	CategoryID  *string  `json:"categoryId" form:"categoryId"`
	SupplierID  *string  `json:"supplierId" form:"supplierId"`
}

// imageKey 形如 products/<sku>-<毫秒时间戳><原扩展名>
func imageKey(sku, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("products/%s-%d%s", sku, time.Now().UnixMilli(), ext)
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput, image *ImageUpload) (*domain.Product, error) {
	existing, err := s.repo.FindBySKU(ctx, in.SKU)
	if err != nil {
		s.log.Error("check product sku failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Message: "Product SKU already exists"}
	}
	if in.Barcode != nil && *in.Barcode != "" {
		existing, err := s.repo.FindByBarcode(ctx, *in.Barcode)
		if err != nil {
			s.log.Error("check product barcode failed", zap.Error(err))
			return nil, err
		}
		if existing != nil {
			return nil, &domain.ConflictError{Message: "Product barcode already exists"}
		}
	}

	expiry, err := parseDatePtr(in.ExpiryDate)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	var uploadedKey string
	if image != nil {
		key := imageKey(in.SKU, image.Filename)
		url, err := s.storage.Upload(ctx, key, image.Body, image.ContentType)
		if err != nil {
			s.log.Error("upload product image failed", zap.String("key", key), zap.Error(err))
			return nil, &domain.StorageError{Op: "Failed to upload image", Err: err}
		}
		imageURL = &url
		uploadedKey = key
	}

	p := &domain.Product{
		ID:          utils.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		SKU:         in.SKU,
		Barcode:     in.Barcode,
		Weight:      in.Weight,
		Unit:        in.Unit,
		ExpiryDate:  expiry,
		ImageURL:    imageURL,
		IsActive:    true,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := s.repo.Create(ctx, p); err != nil {
		// 行没落库就把已上传的对象清掉，清理失败只记日志
		if uploadedKey != "" {
			if derr := s.storage.Delete(ctx, uploadedKey); derr != nil {
				s.log.Warn("cleanup uploaded image failed", zap.String("key", uploadedKey), zap.Error(derr))
			}
		}
		if domain.IsConflict(err) {
			return nil, err
		}
		s.log.Error("create product failed", zap.Error(err))
		return nil, err
	}
	return s.FindOne(ctx, p.ID)
}

func (s *ProductService) List(ctx context.Context, f domain.ProductFilter, q domain.ListQuery) (*domain.ListResult[domain.Product], error) {
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		s.log.Error("list products failed", zap.Error(err))
		return nil, err
	}
	return domain.NewListResult(items, total, q), nil
}

func (s *ProductService) FindOne(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("find product failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "Product", ID: id}
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput, image *ImageUpload) (*domain.Product, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != nil && *in.SKU != current.SKU {
		existing, err := s.repo.FindBySKU(ctx, *in.SKU)
		if err != nil {
			s.log.Error("check product sku failed", zap.Error(err))
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.ConflictError{Message: "Product SKU already exists"}
		}
	}
	if in.Barcode != nil && *in.Barcode != "" &&
		(current.Barcode == nil || *in.Barcode != *current.Barcode) {
		existing, err := s.repo.FindByBarcode(ctx, *in.Barcode)
		if err != nil {
			s.log.Error("check product barcode failed", zap.Error(err))
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.ConflictError{Message: "Product barcode already exists"}
		}
	}

	data := map[string]any{}
	setIf(data, "name", in.Name)
	setIf(data, "description", in.Description)
	setIf(data, "price", in.Price)
	setIf(data, "stock", in.Stock)
	setIf(data, "barcode", in.Barcode)
	setIf(data, "weight", in.Weight)
	setIf(data, "unit", in.Unit)
	setIf(data, "is_active", in.IsActive)
	setIf(data, "category_id", in.CategoryID)
	setIf(data, "supplier_id", in.SupplierID)
	if in.SKU != nil && *in.SKU != current.SKU {
		data["sku"] = *in.SKU
	}
	if t, err := parseDatePtr(in.ExpiryDate); err != nil {
		return nil, err
	} else if t != nil {
		data["expiry_date"] = *t
	}

	if image != nil {
		// 先删旧图，删除失败不阻断换图
		if current.ImageURL != nil && *current.ImageURL != "" {
			oldKey := s.storage.KeyFromURL(*current.ImageURL)
			if err := s.storage.Delete(ctx, oldKey); err != nil {
				s.log.Warn("delete old product image failed", zap.String("key", oldKey), zap.Error(err))
			}
		}
		sku := current.SKU
		if in.SKU != nil {
			sku = *in.SKU
		}
		key := imageKey(sku, image.Filename)
		url, err := s.storage.Upload(ctx, key, image.Body, image.ContentType)
		if err != nil {
			s.log.Error("upload product image failed", zap.String("key", key), zap.Error(err))
			return nil, &domain.StorageError{Op: "Failed to upload image", Err: err}
		}
		data["image_url"] = url
	}

	if len(data) > 0 {
		if err := s.repo.Update(ctx, id, data); err != nil {
			if domain.IsConflict(err) {
				return nil, err
			}
			s.log.Error("update product failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

func (s *ProductService) Remove(ctx context.Context, id string) (string, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return "", err
	}
	if current.ImageURL != nil && *current.ImageURL != "" {
		key := s.storage.KeyFromURL(*current.ImageURL)
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn("delete product image failed", zap.String("key", key), zap.Error(err))
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete product failed", zap.String("id", id), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Product with ID %s deleted successfully", id), nil
}
