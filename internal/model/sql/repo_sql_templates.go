package sql

import (
	"cannedreply/internal/entity"
	"cannedreply/internal/utils"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// templateCategoryRow 批量加载分类时的扫描结果
type templateCategoryRow struct {
	ResponseTemplateID uint
	CategoryID         uint
	Name               string
	Slug               string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ListResponseTemplates retrieves one page of a user's templates with their categories.
func (r *GormRepository) ListResponseTemplates(ctx context.Context, params *entity.ResponseTemplateQuery) ([]entity.DbResponseTemplate, *entity.Meta, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}
	if params == nil {
		params = &entity.ResponseTemplateQuery{}
	}
	if params.UserID == 0 {
		return nil, nil, fmt.Errorf("template query requires an owner")
	}

	query := r.db.WithContext(ctx).
		Model(&entity.DbResponseTemplate{}).
		Where("response_templates.user_id = ?", params.UserID)

	if trimmed := strings.TrimSpace(params.Name); trimmed != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(trimmed)) + "%"
		query = query.Where("LOWER(response_templates.name) LIKE ? ESCAPE '!'", pattern)
	}
	if trimmed := strings.TrimSpace(params.Type); trimmed != "" {
		query = query.Where("response_templates.type = ?", trimmed)
	}
	if params.CategoryID > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM category_response_template crt WHERE crt.response_template_id = response_templates.id AND crt.category_id = ?)",
			params.CategoryID,
		)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, nil, err
	}

	page := int64(1)
	pageSize := int64(24)
	if params.Page > 0 {
		page = params.Page
	}
	if params.PageSize > 0 {
		pageSize = params.PageSize
	}
	meta := r.calculatePagination(totalCount, page, pageSize)
	// 超出最后一页直接返回空，也避免 (page-1)*pageSize 溢出
	if page-1 > totalCount/pageSize {
		return []entity.DbResponseTemplate{}, meta, nil
	}
	offset := int((page - 1) * pageSize)

	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(params.UsageOrder), entity.UsageOrderAsc) {
		direction = "ASC"
	}

	var templates []entity.DbResponseTemplate
	if err := query.
		Order(fmt.Sprintf("response_templates.usage_count %s, response_templates.id ASC", direction)).
		Offset(offset).
		Limit(int(pageSize)).
		Find(&templates).Error; err != nil {
		return nil, nil, err
	}

	if err := r.loadCategories(ctx, r.db, templates); err != nil {
		return nil, nil, err
	}

	return templates, meta, nil
}

// ListAllResponseTemplates returns every template owned by the user, most used first.
func (r *GormRepository) ListAllResponseTemplates(ctx context.Context, userID uint) ([]entity.DbResponseTemplate, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var templates []entity.DbResponseTemplate
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("usage_count DESC, id ASC").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, r.db, templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// ListResponseTemplateTypes returns the distinct non-empty types used by a user, sorted.
func (r *GormRepository) ListResponseTemplateTypes(ctx context.Context, userID uint) ([]string, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var types []string
	if err := r.db.WithContext(ctx).
		Model(&entity.DbResponseTemplate{}).
		Where("user_id = ? AND type IS NOT NULL AND type <> ''", userID).
		Distinct().
		Pluck("type", &types).Error; err != nil {
		return nil, err
	}
	sort.Strings(types)
	return types, nil
}

// GetResponseTemplate loads a template together with its categories.
func (r *GormRepository) GetResponseTemplate(ctx context.Context, id uint) (*entity.DbResponseTemplate, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var template entity.DbResponseTemplate
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}

	templates := []entity.DbResponseTemplate{template}
	if err := r.loadCategories(ctx, r.db, templates); err != nil {
		return nil, err
	}
	return &templates[0], nil
}

// CreateResponseTemplate inserts a template and links the given categories in one transaction.
// A nil categoryIDs leaves the template without categories.
func (r *GormRepository) CreateResponseTemplate(ctx context.Context, template *entity.DbResponseTemplate, categoryIDs []uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if template == nil {
		return fmt.Errorf("template is nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		template.UsageCount = 0
		if err := tx.Omit("Categories", "User").Create(template).Error; err != nil {
			return err
		}
		if categoryIDs == nil {
			return nil
		}
		return syncTemplateCategories(tx, template.ID, categoryIDs)
	})
}

// UpdateResponseTemplate replaces name, content and type. A nil categoryIDs keeps the links untouched.
func (r *GormRepository) UpdateResponseTemplate(ctx context.Context, id uint, updates entity.ResponseTemplateUpdates, categoryIDs *[]uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid template id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// MySQL 对未变化的行返回 0 affected，存在性需单独判断
		if err := templateExists(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&entity.DbResponseTemplate{}).Where("id = ?", id).Updates(updates.ToMap()).Error; err != nil {
			return err
		}
		if categoryIDs == nil {
			return nil
		}
		return syncTemplateCategories(tx, id, *categoryIDs)
	})
}

// DeleteResponseTemplate removes a template and its category links. Categories are kept.
func (r *GormRepository) DeleteResponseTemplate(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid template id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("response_template_id = ?", id).Delete(&entity.DbCategoryResponseTemplate{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbResponseTemplate{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SyncResponseTemplateCategories makes the template's category set equal to categoryIDs.
func (r *GormRepository) SyncResponseTemplateCategories(ctx context.Context, templateID uint, categoryIDs []uint) error {
	if err := r.ready(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := templateExists(tx, templateID); err != nil {
			return err
		}
		return syncTemplateCategories(tx, templateID, categoryIDs)
	})
}

// IncrementResponseTemplateUsage atomically bumps usage_count by one and returns the fresh row.
func (r *GormRepository) IncrementResponseTemplateUsage(ctx context.Context, id uint) (*entity.DbResponseTemplate, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var template entity.DbResponseTemplate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 由数据库完成自增，避免读改写丢失并发更新
		result := tx.Model(&entity.DbResponseTemplate{}).
			Where("id = ?", id).
			UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&template, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func templateExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&entity.DbResponseTemplate{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// syncTemplateCategories 在事务内按差异增删关联行，未变化的行保持原样
func syncTemplateCategories(tx *gorm.DB, templateID uint, categoryIDs []uint) error {
	wanted := utils.DeduplicateIDs(categoryIDs)
	for _, id := range wanted {
		if id == 0 {
			return entity.ErrUnknownCategory
		}
	}

	if len(wanted) > 0 {
		var found int64
		if err := tx.Model(&entity.DbCategory{}).Where("id IN ?", wanted).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(wanted)) {
			return entity.ErrUnknownCategory
		}
	}

	var existing []uint
	if err := tx.Model(&entity.DbCategoryResponseTemplate{}).
		Where("response_template_id = ?", templateID).
		Pluck("category_id", &existing).Error; err != nil {
		return err
	}

	wantedSet := make(map[uint]struct{}, len(wanted))
	for _, id := range wanted {
		wantedSet[id] = struct{}{}
	}
	existingSet := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	var removed []uint
	for _, id := range existing {
		if _, ok := wantedSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		if err := tx.Where("response_template_id = ? AND category_id IN ?", templateID, removed).
			Delete(&entity.DbCategoryResponseTemplate{}).Error; err != nil {
			return err
		}
	}

	var added []entity.DbCategoryResponseTemplate
	for _, id := range wanted {
		if _, ok := existingSet[id]; !ok {
			added = append(added, entity.DbCategoryResponseTemplate{
				CategoryID:         id,
				ResponseTemplateID: templateID,
			})
		}
	}
	if len(added) > 0 {
		if err := tx.Omit("Category", "ResponseTemplate").Create(&added).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadCategories 一次查询为所有模板填充分类，按分类名排序
func (r *GormRepository) loadCategories(ctx context.Context, db *gorm.DB, templates []entity.DbResponseTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(templates))
	for i := range templates {
		ids = append(ids, templates[i].ID)
		templates[i].Categories = []entity.DbCategory{}
	}

	var rows []templateCategoryRow
	if err := db.WithContext(ctx).
		Table("category_response_template AS crt").
		Select("crt.response_template_id, categories.id AS category_id, categories.name, categories.slug, categories.created_at, categories.updated_at").
		Joins("JOIN categories ON categories.id = crt.category_id").
		Where("crt.response_template_id IN ?", ids).
		Order("categories.name ASC, categories.id ASC").
		Scan(&rows).Error; err != nil {
		return err
	}

	index := make(map[uint]int, len(templates))
	for i := range templates {
		index[templates[i].ID] = i
	}
	for _, row := range rows {
		i, ok := index[row.ResponseTemplateID]
		if !ok {
			continue
		}
		templates[i].Categories = append(templates[i].Categories, entity.DbCategory{
			ID:        row.CategoryID,
			Name:      row.Name,
			Slug:      row.Slug,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return nil
}
