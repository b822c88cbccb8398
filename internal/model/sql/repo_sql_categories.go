package sql

import (
	"cannedreply/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListCategories returns all categories ordered by name.
func (r *GormRepository) ListCategories(ctx context.Context) ([]entity.DbCategory, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var categories []entity.DbCategory
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory loads a category by id.
func (r *GormRepository) GetCategory(ctx context.Context, id uint) (*entity.DbCategory, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var category entity.DbCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug loads a category by its unique slug.
func (r *GormRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entity.DbCategory, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var category entity.DbCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", trimmed).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a new category. A taken slug surfaces as gorm.ErrDuplicatedKey.
func (r *GormRepository) CreateCategory(ctx context.Context, category *entity.DbCategory) error {
	if err := r.ready(); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// UpdateCategory updates category fields.
func (r *GormRepository) UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	if updates.IsEmpty() {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.DbCategory
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			return err
		}
		return tx.Model(&entity.DbCategory{}).Where("id = ?", id).Updates(updates.ToMap()).Error
	})
}

// DeleteCategory removes a category and its template links. Templates are kept.
func (r *GormRepository) DeleteCategory(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&entity.DbCategoryResponseTemplate{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
