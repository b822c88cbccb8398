package model

import (
	"cannedreply/internal/config"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"datas/a.db", "datas/a.db?_foreign_keys=1"},
		{"file:x?mode=memory", "file:x?mode=memory&_foreign_keys=1"},
		{"a.db?_fk=1", "a.db?_fk=1"},
		{"a.db?_foreign_keys=0", "a.db?_foreign_keys=0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.in))
	}
}

func TestMaxOpenConns(t *testing.T) {
	assert.Equal(t, 1, maxOpenConns(&config.Config{}, 1))
	assert.Equal(t, 7, maxOpenConns(&config.Config{DBMaxOpenConns: 7}, 1))
	assert.Equal(t, 100, maxOpenConns(nil, 100))
}

func TestInitRepositoryRejectsUnknownType(t *testing.T) {
	_, err := InitRepository(nil)
	assert.Error(t, err)

	_, err = InitRepository(&config.Config{DBType: "oracle"})
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestInitRepositoryCreatesSQLiteDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	repo, err := InitRepository(&config.Config{DBType: DBTypeSQLite, DBPath: path})
	require.NoError(t, err)
	require.NotNil(t, repo)
	assert.FileExists(t, path)
}

func TestSeedDefaultCategoriesIsIdempotent(t *testing.T) {
	repo, err := InitRepository(&config.Config{DBType: DBTypeSQLite, DBPath: filepath.Join(t.TempDir(), "seed.db")})
	require.NoError(t, err)

	names := []string{"Greetings", " greetings ", "Follow up", "!!!"}
	require.NoError(t, SeedDefaultCategories(context.Background(), repo, names))
	require.NoError(t, SeedDefaultCategories(context.Background(), repo, names))

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "follow-up", categories[0].Slug)
	assert.Equal(t, "greetings", categories[1].Slug)
}
