package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBType         string `env:"DBType" envDefault:"sqlite"`
	DSNURL         string `env:"DSN_URL" envDefault:""`
	DBUser         string `env:"DBUser" envDefault:""`
	DBPassword     string `env:"DBPassword" envDefault:""`
	DBAddr         string `env:"DBAddr" envDefault:""`
	DBName         string `env:"DBName" envDefault:"cannedreply"`
	DBPath         string `env:"DBPath" envDefault:"datas/cannedreply.db"`
	DBPort         string `env:"DBPort" envDefault:"3306"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"0"` // 0 表示按数据库类型取默认值

	// 模板列表每页条数
	TemplatePageSize int `env:"TEMPLATE_PAGE_SIZE" envDefault:"24"`
	// 启动时确保存在的默认分类
	DefaultCategories   []string `env:"DEFAULT_CATEGORIES" envSeparator:","`
	RegistrationEnabled bool     `env:"REGISTRATION_ENABLED" envDefault:"true"`

	StorageType          string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir      string `env:"STORAGE_LOCAL_DIR" envDefault:"datas/exports"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"/files"`

	// S3 兼容存储配置
	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// 阿里云 OSS 存储配置
	StorageOSSEndpoint        string `env:"STORAGE_OSS_ENDPOINT"`
	StorageOSSBucket          string `env:"STORAGE_OSS_BUCKET"`
	StorageOSSPrefix          string `env:"STORAGE_OSS_PREFIX"`
	StorageOSSAccessKeyID     string `env:"STORAGE_OSS_ACCESS_KEY_ID"`
	StorageOSSAccessKeySecret string `env:"STORAGE_OSS_ACCESS_KEY_SECRET"`

	// 腾讯云 COS 存储配置
	StorageCOSBucketURL string `env:"STORAGE_COS_BUCKET_URL"`
	StorageCOSPrefix    string `env:"STORAGE_COS_PREFIX"`
	StorageCOSSecretID  string `env:"STORAGE_COS_SECRET_ID"`
	StorageCOSSecretKey string `env:"STORAGE_COS_SECRET_KEY"`

	// Cloudflare R2 存储配置
	StorageR2AccountID       string `env:"STORAGE_R2_ACCOUNT_ID"`
	StorageR2Endpoint        string `env:"STORAGE_R2_ENDPOINT"`
	StorageR2Region          string `env:"STORAGE_R2_REGION" envDefault:"auto"`
	StorageR2Bucket          string `env:"STORAGE_R2_BUCKET"`
	StorageR2Prefix          string `env:"STORAGE_R2_PREFIX"`
	StorageR2AccessKeyID     string `env:"STORAGE_R2_ACCESS_KEY_ID"`
	StorageR2SecretAccessKey string `env:"STORAGE_R2_SECRET_ACCESS_KEY"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"cannedreply"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	if Conf.TemplatePageSize <= 0 {
		Conf.TemplatePageSize = 24
	}
	logrus.Debugf("%#v", Conf.Redacted())
	return Conf, nil
}

const redactedValue = "******"

// Redacted 返回隐藏了密钥与口令的副本，用于日志输出
func (c Config) Redacted() Config {
	for _, secret := range []*string{
		&c.DSNURL,
		&c.DBPassword,
		&c.JWTSecret,
		&c.StorageS3SecretAccessKey,
		&c.StorageS3SessionToken,
		&c.StorageOSSAccessKeySecret,
		&c.StorageCOSSecretKey,
		&c.StorageR2SecretAccessKey,
	} {
		if *secret != "" {
			*secret = redactedValue
		}
	}
	return c
}
