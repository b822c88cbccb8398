package model

import (
	"cannedreply/internal/config"
	"cannedreply/internal/entity"
	"cannedreply/internal/model/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

const defaultMaxOpenConns = 100

// RepositoryFactory 根据数据库类型创建对应的仓库实现
type RepositoryFactory struct{}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

// InitRepository 初始化仓库的辅助函数
func InitRepository(cfg *config.Config) (Repository, error) {
	if cfg == nil || cfg.DBType == "" {
		return nil, fmt.Errorf("database type is not configured")
	}
	return NewRepositoryFactory().CreateRepository(cfg)
}

// CreateRepository 根据配置创建对应的仓库实现
func (f *RepositoryFactory) CreateRepository(cfg *config.Config) (Repository, error) {
	dialector, openConns, err := f.dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := f.openGormDB(dialector, openConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBType, err)
	}
	if err := f.migrateSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return sql.NewGormRepository(db), nil
}

// dialector 按数据库类型构造 DSN，并给出连接池上限
func (f *RepositoryFactory) dialector(cfg *config.Config) (gorm.Dialector, int, error) {
	switch cfg.DBType {
	case DBTypeMySQL:
		dsn := cfg.DSNURL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser, cfg.DBPassword, cfg.DBAddr, cfg.DBPort, cfg.DBName)
		}
		return mysql.Open(dsn), maxOpenConns(cfg, defaultMaxOpenConns), nil
	case DBTypePostgres:
		dsn := cfg.DSNURL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.DBAddr, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		}
		return postgres.Open(dsn), maxOpenConns(cfg, defaultMaxOpenConns), nil
	case DBTypeSQLite:
		filePath, err := prepareSQLitePath(cfg.DBPath)
		if err != nil {
			return nil, 0, err
		}
		// 单连接让并发写入排队，而不是返回 database is locked
		return sqlite.Open(sqliteDSN(filePath)), maxOpenConns(cfg, 1), nil
	default:
		return nil, 0, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// prepareSQLitePath SQLite 会在连接时创建 .db 文件，但目录必须已存在
func prepareSQLitePath(filePath string) (string, error) {
	if filePath == "" {
		filePath = "datas/cannedreply.db"
	}
	if strings.HasPrefix(filePath, "file:") {
		return filePath, nil
	}
	if dir := filepath.Dir(filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return filePath, nil
}

func (f *RepositoryFactory) openGormDB(dialector gorm.Dialector, openConns int) (*gorm.DB, error) {
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(min(10, openConns))
	sqlDB.SetMaxOpenConns(openConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// migrateSchema 迁移数据库表结构，关联表依赖外键级联删除
func (f *RepositoryFactory) migrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.DbUser{},
		&entity.DbCategory{},
		&entity.DbResponseTemplate{},
		&entity.DbCategoryResponseTemplate{},
	)
}

func maxOpenConns(cfg *config.Config, fallback int) int {
	if cfg != nil && cfg.DBMaxOpenConns > 0 {
		return cfg.DBMaxOpenConns
	}
	return fallback
}

// sqliteDSN 打开 SQLite 的外键约束
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=1"
	}
	return path + "?_foreign_keys=1"
}
