package storage

import (
	"cannedreply/internal/config"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, 3, 9, 23, 59, 0, 0, time.FixedZone("CST", 8*3600))
	tests := []struct {
		name   string
		prefix string
		opts   SaveOptions
		want   string
	}{
		{name: "导出文件", opts: SaveOptions{Category: CategoryExports, BaseName: "user-1-abc", Extension: "json"}, want: "exports/2024/03/09/user-1-abc.json"},
		{name: "带前缀", prefix: "/team/a/", opts: SaveOptions{Category: CategoryExports, BaseName: "x", Extension: ".JSON"}, want: "team/a/exports/2024/03/09/x.json"},
		{name: "空分类", opts: SaveOptions{BaseName: "x", Extension: "json"}, want: "misc/2024/03/09/x.json"},
		{name: "非法字符", opts: SaveOptions{Category: "Ex/ports", BaseName: "../My File", Extension: "j?s"}, want: "ex-ports/2024/03/09/my-file.js"},
		{name: "空扩展名", opts: SaveOptions{Category: "exports", BaseName: "x"}, want: "exports/2024/03/09/x.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newObjectKey(tt.prefix, tt.opts, at).String())
		})
	}

	unnamed := newObjectKey("", SaveOptions{Category: "exports", Extension: "json"}, at)
	assert.Regexp(t, regexp.MustCompile(`^exports/2024/03/09/\d+\.json$`), unnamed.String())
}

func TestObjectKeyContentType(t *testing.T) {
	at := time.Now()
	assert.Contains(t, newObjectKey("", SaveOptions{Extension: "json"}, at).ContentType(), "application/json")
	assert.Equal(t, defaultContentType, newObjectKey("", SaveOptions{Extension: "zzzunknown"}, at).ContentType())
}

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.LocalBaseDir())

	payload := []byte(`{"version":1}`)
	key, err := store.Save(context.Background(), payload, SaveOptions{Category: CategoryExports, BaseName: "library", Extension: "json"})
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, payload, written)

	_, err = store.Save(context.Background(), nil, SaveOptions{Category: CategoryExports})
	assert.ErrorIs(t, err, errEmptyPayload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, payload, SaveOptions{Category: CategoryExports})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStorageSelection(t *testing.T) {
	store, err := NewStorage(config.Config{StorageType: "LOCAL", StorageLocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = NewStorage(config.Config{StorageType: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(config.Config{StorageType: TypeS3, StorageS3Bucket: "b"})
	assert.ErrorContains(t, err, "missing S3 region")

	_, err = NewStorage(config.Config{StorageType: TypeR2, StorageR2Bucket: "b"})
	assert.ErrorContains(t, err, "missing R2 endpoint")

	_, err = NewStorage(config.Config{StorageType: TypeOSS})
	assert.ErrorContains(t, err, "missing OSS endpoint")

	_, err = NewStorage(config.Config{StorageType: TypeCOS, StorageCOSBucketURL: "https://b.cos.example.com"})
	assert.ErrorContains(t, err, "missing COS credentials")

	s3Store, err := NewStorage(config.Config{
		StorageType:              TypeS3,
		StorageS3Bucket:          "bucket",
		StorageS3Region:          "us-east-1",
		StorageS3AccessKeyID:     "id",
		StorageS3SecretAccessKey: "secret",
		StorageS3Endpoint:        "minio.local:9000",
		StorageS3Prefix:          "/team/",
	})
	require.NoError(t, err)
	require.IsType(t, &s3Storage{}, s3Store)
	assert.Equal(t, "team", s3Store.(*s3Storage).prefix)
}
