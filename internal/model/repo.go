package model

import (
	"cannedreply/internal/entity"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	Ping(ctx context.Context) error

	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// 分类
	ListCategories(ctx context.Context) ([]entity.DbCategory, error)
	GetCategory(ctx context.Context, id uint) (*entity.DbCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.DbCategory, error)
	CreateCategory(ctx context.Context, category *entity.DbCategory) error
	UpdateCategory(ctx context.Context, id uint, updates entity.CategoryUpdates) error
	DeleteCategory(ctx context.Context, id uint) error

	// 回复模板
	ListResponseTemplates(ctx context.Context, params *entity.ResponseTemplateQuery) ([]entity.DbResponseTemplate, *entity.Meta, error)
	ListAllResponseTemplates(ctx context.Context, userID uint) ([]entity.DbResponseTemplate, error)
	ListResponseTemplateTypes(ctx context.Context, userID uint) ([]string, error)
	GetResponseTemplate(ctx context.Context, id uint) (*entity.DbResponseTemplate, error)
	CreateResponseTemplate(ctx context.Context, template *entity.DbResponseTemplate, categoryIDs []uint) error
	UpdateResponseTemplate(ctx context.Context, id uint, updates entity.ResponseTemplateUpdates, categoryIDs *[]uint) error
	DeleteResponseTemplate(ctx context.Context, id uint) error
	SyncResponseTemplateCategories(ctx context.Context, templateID uint, categoryIDs []uint) error
	IncrementResponseTemplateUsage(ctx context.Context, id uint) (*entity.DbResponseTemplate, error)
}
