package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 24, cfg.TemplatePageSize)
	assert.True(t, cfg.RegistrationEnabled)
	assert.Empty(t, cfg.DefaultCategories)
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("TEMPLATE_PAGE_SIZE", "52")
	t.Setenv("DEFAULT_CATEGORIES", "Greetings,Follow-up")
	t.Setenv("REGISTRATION_ENABLED", "false")
	t.Setenv("DBType", "postgres")

	cfg, err := ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, 52, cfg.TemplatePageSize)
	assert.Equal(t, []string{"Greetings", "Follow-up"}, cfg.DefaultCategories)
	assert.False(t, cfg.RegistrationEnabled)
	assert.Equal(t, "postgres", cfg.DBType)
}

func TestParseConfigFallsBackOnInvalidPageSize(t *testing.T) {
	t.Setenv("TEMPLATE_PAGE_SIZE", "0")

	cfg, err := ParseConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.TemplatePageSize)
}

func TestRedactedHidesSecrets(t *testing.T) {
	cfg := Config{
		DBUser:                   "app",
		DBPassword:               "db-pass",
		DSNURL:                   "app:db-pass@tcp(db:3306)/app",
		JWTSecret:                "jwt-secret",
		StorageS3AccessKeyID:     "AKIA123",
		StorageS3SecretAccessKey: "s3-secret",
		StorageR2SecretAccessKey: "r2-secret",
	}

	redacted := cfg.Redacted()
	dump := fmt.Sprintf("%#v", redacted)
	for _, secret := range []string{"db-pass", "jwt-secret", "s3-secret", "r2-secret"} {
		assert.NotContains(t, dump, secret)
	}
	assert.Equal(t, "app", redacted.DBUser)
	assert.Equal(t, "AKIA123", redacted.StorageS3AccessKeyID)
	assert.Empty(t, redacted.StorageCOSSecretKey)
	assert.Equal(t, "jwt-secret", cfg.JWTSecret)
}
