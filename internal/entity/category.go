package entity

import "time"

// DbCategory 共享的模板分类，不属于任何用户
type DbCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug string `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
}

// TableName 指定表名
func (DbCategory) TableName() string {
	return "categories"
}

// Category is the DTO representation of a category.
type Category struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryCreateRequest is the payload for creating a category.
type CategoryCreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"max=255"`
}

// CategoryUpdateRequest is the payload for updating a category.
type CategoryUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,max=255"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
}
