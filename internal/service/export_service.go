package service

import (
	"cannedreply/internal/entity"
	"cannedreply/internal/model"
	"cannedreply/internal/storage"
	"cannedreply/internal/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const libraryExportVersion = 1

// ExportResult 导出写入存储后的位置
type ExportResult struct {
	Key       string
	Templates int
}

// ExportService 把用户的模板库序列化为 JSON 并写入对象存储
type ExportService struct {
	repo    model.Repository
	storage storage.Storage
	now     func() time.Time
}

func NewExportService(repo model.Repository, store storage.Storage) *ExportService {
	return &ExportService{repo: repo, storage: store, now: time.Now}
}

// Export 导出用户全部模板（含分类 slug）以及所有分类
func (s *ExportService) Export(ctx context.Context, userID uint) (*ExportResult, error) {
	if s.storage == nil {
		return nil, errors.New("export storage is not configured")
	}
	if userID == 0 {
		return nil, PermissionDenied("authentication required")
	}

	document, err := s.Build(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key, err := s.storage.Save(ctx, payload, storage.SaveOptions{
		Category:    storage.CategoryExports,
		BaseName:    fmt.Sprintf("user-%d-%s", userID, utils.GenerateUUID()),
		Extension:   "json",
		ContentType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("save export: %w", err)
	}

	logrus.WithField("user_id", userID).
		WithField("key", key).
		WithField("templates", len(document.Templates)).
		Info("library exported")
	return &ExportResult{Key: key, Templates: len(document.Templates)}, nil
}

// Build 组装导出文档，不写存储
func (s *ExportService) Build(ctx context.Context, userID uint) (*entity.LibraryExport, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err, "user")
	}
	templates, err := s.repo.ListAllResponseTemplates(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.LibraryExportTemplate, 0, len(templates))
	for _, tpl := range templates {
		slugs := make([]string, 0, len(tpl.Categories))
		for _, c := range tpl.Categories {
			slugs = append(slugs, c.Slug)
		}
		items = append(items, entity.LibraryExportTemplate{
			Name:       tpl.Name,
			Content:    tpl.Content,
			Type:       tpl.Type,
			UsageCount: tpl.UsageCount,
			Categories: slugs,
		})
	}

	return &entity.LibraryExport{
		Version:    libraryExportVersion,
		ExportedAt: s.now().UTC(),
		Owner:      UserSummary(user),
		Categories: toCategoryDTOs(categories),
		Templates:  items,
	}, nil
}
