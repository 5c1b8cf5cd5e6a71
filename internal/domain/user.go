package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email    string  `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password string  `gorm:"size:100;not null" json:"-"`
	Name     *string `gorm:"size:191" json:"name"`
	Role     string  `gorm:"size:16;not null;default:USER" json:"role"`
	IsActive bool    `gorm:"not null;default:true" json:"isActive"`

	// Personal information
	EmployeeType  *string    `gorm:"size:64" json:"employeeType"`
	NationalID    *string    `gorm:"column:national_id;size:32" json:"nationalId"`
	TitleTh       *string    `gorm:"size:32" json:"titleTh"`
	FirstNameTh   *string    `gorm:"size:128" json:"firstNameTh"`
	LastNameTh    *string    `gorm:"size:128" json:"lastNameTh"`
	FirstNameEn   *string    `gorm:"size:128" json:"firstNameEn"`
	LastNameEn    *string    `gorm:"size:128" json:"lastNameEn"`
	Nickname      *string    `gorm:"size:64" json:"nickname"`
	Gender        *string    `gorm:"size:16" json:"gender"`
	BloodType     *string    `gorm:"size:8" json:"bloodType"`
	BirthDate     *time.Time `json:"birthDate"`
	Ethnicity     *string    `gorm:"size:64" json:"ethnicity"`
	Nationality   *string    `gorm:"size:64" json:"nationality"`
	Religion      *string    `gorm:"size:64" json:"religion"`
	Phone         *string    `gorm:"size:32" json:"phone"`
	Province      *string    `gorm:"size:64" json:"province"`
	MaritalStatus *string    `gorm:"size:32" json:"maritalStatus"`

	// Employment information
	Username         *string    `gorm:"size:64" json:"username"`
	EmployeeID       *string    `gorm:"column:employee_id;size:32" json:"employeeId"`
	Position         *string    `gorm:"size:128" json:"position"`
	PositionLevel    *string    `gorm:"size:64" json:"positionLevel"`
	Department       *string    `gorm:"size:128" json:"department"`
	EmploymentStatus *string    `gorm:"size:64" json:"employmentStatus"`
	StartDate        *time.Time `json:"startDate"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 仅展示用：详情页取最近 5 篇 + 记录数
	Posts []PostSummary `gorm:"-" json:"posts,omitempty"`
	Count *UserCount    `gorm:"-" json:"_count,omitempty"`
}

func (User) TableName() string { return "users" }

type UserCount struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
}

// UserRef 关联输出里只暴露这几个字段（post.author / comment.author）
type UserRef struct {
	ID    string  `gorm:"primaryKey" json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

func (UserRef) TableName() string { return "users" }

type UserFilter struct {
	IsActive *bool
	Role     string
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f UserFilter, q ListQuery) ([]User, int64, error)
	Update(ctx context.Context, id string, data map[string]any) error
	Delete(ctx context.Context, id string) error
}
