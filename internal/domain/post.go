package domain

import (
	"context"
	"time"
)

type Post struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string  `gorm:"size:191;not null" json:"title"`
	Content   *string `gorm:"type:text" json:"content"`
	Published bool    `gorm:"not null;default:false" json:"published"`
	AuthorID  string  `gorm:"index;type:varchar(36);not null" json:"authorId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Author   *UserRef   `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Comments []Comment  `gorm:"-" json:"comments,omitempty"`
	Count    *PostCount `gorm:"-" json:"_count,omitempty"`
}

func (Post) TableName() string { return "posts" }

type PostCount struct {
	Comments int64 `json:"comments"`
}

// PostSummary 用户详情里的最近文章预览
type PostSummary struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostSummary) TableName() string { return "posts" }

type PostFilter struct {
	Published *bool
	AuthorID  string
}

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, f PostFilter, q ListQuery) ([]Post, int64, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
}
