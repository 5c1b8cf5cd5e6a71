package domain

import "time"

// Comment 只作为外键目标和展示数据，没有独立的 service
type Comment struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID string `gorm:"index;type:varchar(36);not null" json:"authorId"`
	PostID   string `gorm:"index;type:varchar(36);not null" json:"postId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Author *UserRef `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
}

func (Comment) TableName() string { return "comments" }
