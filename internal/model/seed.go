package model

import (
	"cannedreply/internal/entity"
	"cannedreply/internal/utils"
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedDefaultCategories ensures the configured categories exist. Names whose slug is
// already taken are skipped, so running it on every boot is safe.
func SeedDefaultCategories(ctx context.Context, repo Repository, names []string) error {
	if repo == nil {
		return nil
	}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		slug := utils.CategorySlug(name)
		if slug == "" {
			continue
		}

		_, err := repo.GetCategoryBySlug(ctx, slug)
		switch {
		case err == nil:
			continue
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := repo.CreateCategory(ctx, &entity.DbCategory{Name: name, Slug: slug}); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return err
			}
			logrus.WithField("slug", slug).Info("seeded default category")
		default:
			return err
		}
	}
	return nil
}
