package storage

import (
	"cannedreply/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

// CategoryExports 模板库导出文件所在目录
const CategoryExports = "exports"

var errEmptyPayload = errors.New("empty payload")

// SaveOptions 控制存储后端如何持久化文件。
//
// Category 用于组织对象路径，Extension 不含前导点，ContentType 为空时按扩展名推断。
type SaveOptions struct {
	Category    string
	BaseName    string
	Extension   string
	ContentType string
}

// Storage 持久化字节数据并返回对象 key（本地存储为相对路径）。
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider 由可直接通过 HTTP 提供文件的本地存储实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// prepareSave 校验写入参数并生成对象 key
func prepareSave(ctx context.Context, data []byte, opts SaveOptions, prefix string) (string, string, error) {
	if len(data) == 0 {
		return "", "", errEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	key := newObjectKey(prefix, opts, time.Now())
	contentType := strings.TrimSpace(opts.ContentType)
	if contentType == "" {
		contentType = key.ContentType()
	}
	return key.String(), contentType, nil
}
