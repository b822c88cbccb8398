package service

import (
	"cannedreply/internal/entity"
	"cannedreply/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

const defaultPageSize = 24

// TemplateService 回复模板的业务逻辑，所有操作都以调用者为所有者范围
type TemplateService struct {
	repo      model.Repository
	validator *Validator
	pageSize  int
}

// NewTemplateService 创建模板服务，pageSize <= 0 时使用默认值
func NewTemplateService(repo model.Repository, validator *Validator, pageSize int) *TemplateService {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if validator == nil {
		validator = NewValidator()
	}
	return &TemplateService{repo: repo, validator: validator, pageSize: pageSize}
}

// Dashboard 返回模板分页、全部分类、用户的类型列表以及回显的过滤条件
func (s *TemplateService) Dashboard(ctx context.Context, userID uint, query entity.ResponseTemplateQuery) (*entity.DashboardResponse, error) {
	page, normalised, err := s.list(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.repo.ListResponseTemplateTypes(ctx, userID)
	if err != nil {
		return nil, err
	}

	filters := entity.DashboardFilters{
		Name:       normalised.Name,
		Type:       normalised.Type,
		UsageOrder: normalised.UsageOrder,
	}
	if normalised.CategoryID > 0 {
		id := normalised.CategoryID
		filters.CategoryID = &id
	}

	return &entity.DashboardResponse{
		ResponseTemplates: *page,
		Categories:        toCategoryDTOs(categories),
		Types:             types,
		Filters:           filters,
	}, nil
}

// List 返回一页模板
func (s *TemplateService) List(ctx context.Context, userID uint, query entity.ResponseTemplateQuery) (*entity.ResponseTemplatePage, error) {
	page, _, err := s.list(ctx, userID, query)
	return page, err
}

func (s *TemplateService) list(ctx context.Context, userID uint, query entity.ResponseTemplateQuery) (*entity.ResponseTemplatePage, entity.ResponseTemplateQuery, error) {
	if userID == 0 {
		return nil, query, PermissionDenied("authentication required")
	}

	normalised := normaliseQuery(query)
	normalised.UserID = userID
	normalised.PageSize = int64(s.pageSize)

	templates, meta, err := s.repo.ListResponseTemplates(ctx, &normalised)
	if err != nil {
		return nil, normalised, err
	}

	items := make([]entity.ResponseTemplateItem, 0, len(templates))
	for i := range templates {
		items = append(items, toTemplateItem(&templates[i]))
	}
	return &entity.ResponseTemplatePage{Data: items, Meta: meta}, normalised, nil
}

// Get 读取单个模板，只有所有者可见
func (s *TemplateService) Get(ctx context.Context, userID, id uint) (*entity.ResponseTemplateItem, error) {
	template, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item := toTemplateItem(template)
	return &item, nil
}

// Create 新建模板，CategoryIDs 存在时在同一事务内同步分类
func (s *TemplateService) Create(ctx context.Context, userID uint, req entity.ResponseTemplateRequest) (*entity.ResponseTemplateItem, error) {
	if userID == 0 {
		return nil, PermissionDenied("authentication required")
	}
	req = normaliseTemplateRequest(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	template := &entity.DbResponseTemplate{
		Name:    req.Name,
		Content: req.Content,
		Type:    req.Type,
		UserID:  userID,
	}

	var categoryIDs []uint
	if req.CategoryIDs != nil {
		categoryIDs = *req.CategoryIDs
		if categoryIDs == nil {
			categoryIDs = []uint{}
		}
	}

	if err := s.repo.CreateResponseTemplate(ctx, template, categoryIDs); err != nil {
		return nil, translateRepoError(err, "response template")
	}
	return s.Get(ctx, userID, template.ID)
}

// Update 整体替换 name/content/type；CategoryIDs 缺省时保留原有分类
func (s *TemplateService) Update(ctx context.Context, userID, id uint, req entity.ResponseTemplateRequest) (*entity.ResponseTemplateItem, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	req = normaliseTemplateRequest(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	updates := entity.ResponseTemplateUpdates{Name: req.Name, Content: req.Content, Type: req.Type}
	if err := s.repo.UpdateResponseTemplate(ctx, id, updates, req.CategoryIDs); err != nil {
		return nil, translateRepoError(err, "response template")
	}
	return s.Get(ctx, userID, id)
}

// Delete 删除模板及其分类关联
func (s *TemplateService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteResponseTemplate(ctx, id); err != nil {
		return translateRepoError(err, "response template")
	}
	return nil
}

// Copy 返回模板内容并原子地把使用次数加一
func (s *TemplateService) Copy(ctx context.Context, userID, id uint) (*entity.CopyResponse, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	template, err := s.repo.IncrementResponseTemplateUsage(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "response template")
	}
	return &entity.CopyResponse{Content: template.Content, UsageCount: template.UsageCount}, nil
}

func (s *TemplateService) owned(ctx context.Context, userID, id uint) (*entity.DbResponseTemplate, error) {
	if userID == 0 {
		return nil, PermissionDenied("authentication required")
	}
	template, err := s.repo.GetResponseTemplate(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "response template")
	}
	if template.UserID != userID {
		return nil, PermissionDenied("you do not own this response template")
	}
	return template, nil
}

func normaliseQuery(query entity.ResponseTemplateQuery) entity.ResponseTemplateQuery {
	query.Name = strings.TrimSpace(query.Name)
	query.Type = strings.TrimSpace(query.Type)
	if strings.EqualFold(strings.TrimSpace(query.UsageOrder), entity.UsageOrderAsc) {
		query.UsageOrder = entity.UsageOrderAsc
	} else {
		query.UsageOrder = entity.UsageOrderDesc
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	return query
}

func normaliseTemplateRequest(req entity.ResponseTemplateRequest) entity.ResponseTemplateRequest {
	req.Name = strings.TrimSpace(req.Name)
	if strings.TrimSpace(req.Content) == "" {
		req.Content = ""
	}
	if req.Type != nil {
		trimmed := strings.TrimSpace(*req.Type)
		if trimmed == "" {
			req.Type = nil
		} else {
			req.Type = &trimmed
		}
	}
	return req
}

// translateRepoError 把仓库层错误转换为领域错误，其余错误原样返回
func translateRepoError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource + " not found")
	case errors.Is(err, entity.ErrUnknownCategory):
		return ValidationWithDetails("validation failed", map[string]string{
			"category_ids": "must reference existing categories",
		}).WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(resource + " already exists").WithCause(err)
	default:
		return err
	}
}

func toCategoryDTO(category *entity.DbCategory) entity.Category {
	return entity.Category{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func toCategoryDTOs(categories []entity.DbCategory) []entity.Category {
	result := make([]entity.Category, 0, len(categories))
	for i := range categories {
		result = append(result, toCategoryDTO(&categories[i]))
	}
	return result
}

func toTemplateItem(template *entity.DbResponseTemplate) entity.ResponseTemplateItem {
	return entity.ResponseTemplateItem{
		ID:         template.ID,
		Name:       template.Name,
		Content:    template.Content,
		Type:       template.Type,
		UsageCount: template.UsageCount,
		UserID:     template.UserID,
		Categories: toCategoryDTOs(template.Categories),
		CreatedAt:  template.CreatedAt,
		UpdatedAt:  template.UpdatedAt,
	}
}
