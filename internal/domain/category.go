package domain

import (
	"context"
	"time"
)

type Category struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	IsActive    bool    `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Products []ProductSummary `gorm:"-" json:"products,omitempty"`
	Count    *RelCount        `gorm:"-" json:"_count,omitempty"`
}

func (Category) TableName() string { return "categories" }

// RelCount categories/suppliers 共用的产品计数
type RelCount struct {
	Products int64 `json:"products"`
}

// CategoryRef 产品输出里的分类摘要
type CategoryRef struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (CategoryRef) TableName() string { return "categories" }

type CategoryFilter struct {
	IsActive *bool
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context, f CategoryFilter, q ListQuery) ([]Category, int64, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
}
