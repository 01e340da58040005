package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, StoreDynamo, cfg.StoreDriver)
	assert.Equal(t, "otps", cfg.DynamoTables.OTPs)
	assert.Equal(t, "documents", cfg.DynamoTables.Documents)
	assert.Equal(t, 15*time.Minute, cfg.DocumentURLTTL)
	assert.Equal(t, 1025, cfg.SMTPPort)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DYNAMO_TABLE_WALLETS", "prod_wallets")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.ExposeErrorDetails())
	assert.Equal(t, "prod_wallets", cfg.DynamoTables.Wallets)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_DebugExposesDetailsInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ExposeErrorDetails())
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}
