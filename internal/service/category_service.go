package service

import (
	"cannedreply/internal/entity"
	"cannedreply/internal/model"
	"cannedreply/internal/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CategoryService 管理共享分类
type CategoryService struct {
	repo      model.Repository
	validator *Validator
}

func NewCategoryService(repo model.Repository, validator *Validator) *CategoryService {
	if validator == nil {
		validator = NewValidator()
	}
	return &CategoryService{repo: repo, validator: validator}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryDTOs(categories), nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*entity.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "category")
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Create 新建分类；未提供 slug 时由名称生成，显式 slug 按相同规则规范化
func (s *CategoryService) Create(ctx context.Context, req entity.CategoryCreateRequest) (*entity.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	source := req.Name
	if strings.TrimSpace(req.Slug) != "" {
		source = req.Slug
	}
	slug, err := normaliseSlug(source)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, slug, 0); err != nil {
		return nil, err
	}

	category := &entity.DbCategory{Name: req.Name, Slug: slug}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, translateSlugError(err, slug)
	}
	dto := toCategoryDTO(category)
	return &dto, nil
}

// Update 修改名称和/或 slug，slug 会重新规范化
func (s *CategoryService) Update(ctx context.Context, id uint, req entity.CategoryUpdateRequest) (*entity.Category, error) {
	if _, err := s.repo.GetCategory(ctx, id); err != nil {
		return nil, translateRepoError(err, "category")
	}

	var updates entity.CategoryUpdates
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ValidationWithDetails("validation failed", map[string]string{"name": "is required"})
		}
		req.Name = &name
		updates.Name = &name
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Slug != nil {
		slug, err := normaliseSlug(*req.Slug)
		if err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, slug, id); err != nil {
			return nil, err
		}
		updates.Slug = &slug
	}

	if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
		if updates.Slug != nil {
			return nil, translateSlugError(err, *updates.Slug)
		}
		return nil, translateRepoError(err, "category")
	}
	return s.Get(ctx, id)
}

// Delete 删除分类及其关联，模板保留
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return translateRepoError(err, "category")
	}
	return nil
}

func (s *CategoryService) ensureSlugFree(ctx context.Context, slug string, selfID uint) error {
	existing, err := s.repo.GetCategoryBySlug(ctx, slug)
	switch {
	case err == nil:
		if existing.ID != selfID {
			return slugTaken(slug)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

func normaliseSlug(source string) (string, error) {
	slug := utils.CategorySlug(source)
	if slug == "" {
		return "", ValidationWithDetails("validation failed", map[string]string{
			"slug": "must contain at least one letter or digit",
		})
	}
	if len(slug) > 255 {
		return "", ValidationWithDetails("validation failed", map[string]string{
			"slug": "must not exceed 255 characters",
		})
	}
	return slug, nil
}

func translateSlugError(err error, slug string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return slugTaken(slug).WithCause(err)
	}
	return translateRepoError(err, "category")
}

// slugTaken slug 唯一约束冲突按字段校验失败返回
func slugTaken(slug string) *Error {
	return ValidationWithDetails("validation failed", map[string]string{
		"slug": fmt.Sprintf("%q has already been taken", slug),
	})
}
