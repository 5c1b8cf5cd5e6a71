package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string     `gorm:"size:191;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"not null" json:"price"`
	Stock       int        `gorm:"not null" json:"stock"`
	SKU         string     `gorm:"column:sku;uniqueIndex;size:64;not null" json:"sku"`
	Barcode     *string    `gorm:"uniqueIndex;size:64" json:"barcode"`
	Weight      *float64   `json:"weight"`
	Unit        *string    `gorm:"size:32" json:"unit"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	ImageURL    *string    `gorm:"column:image_url;size:512" json:"imageUrl"`
	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	CategoryID  *string    `gorm:"index;type:varchar(36)" json:"categoryId"`
	SupplierID  *string    `gorm:"index;type:varchar(36)" json:"supplierId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Category *CategoryRef `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Supplier *SupplierRef `gorm:"foreignKey:SupplierID;references:ID" json:"supplier,omitempty"`
}

func (Product) TableName() string { return "products" }

// ProductSummary 分类/供应商详情里的产品预览
type ProductSummary struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	ImageURL *string `gorm:"column:image_url" json:"imageUrl"`
}

func (ProductSummary) TableName() string { return "products" }

type ProductFilter struct {
	IsActive   *bool
	CategoryID string
	SupplierID string
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	List(ctx context.Context, f ProductFilter, q ListQuery) ([]Product, int64, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
}
