package domain

import (
	"context"
	"time"
)

type Supplier struct {
	ID            string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string  `gorm:"uniqueIndex;size:191;not null" json:"name"`
	ContactPerson *string `gorm:"size:191" json:"contactPerson"`
	Phone         *string `gorm:"size:32" json:"phone"`
	Email         *string `gorm:"size:191" json:"email"`
	Address       *string `gorm:"type:text" json:"address"`
	IsActive      bool    `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Products []ProductSummary `gorm:"-" json:"products,omitempty"`
	Count    *RelCount        `gorm:"-" json:"_count,omitempty"`
}

func (Supplier) TableName() string { return "suppliers" }

// SupplierRef 产品输出里的供应商摘要
type SupplierRef struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
}

func (SupplierRef) TableName() string { return "suppliers" }

type SupplierFilter struct {
	IsActive *bool
}

type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) error
	FindByID(ctx context.Context, id string) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	List(ctx context.Context, f SupplierFilter, q ListQuery) ([]Supplier, int64, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
}
