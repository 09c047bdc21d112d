package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLookuper_Defaults(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.Production())
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 365*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "token", cfg.Session.Cookie)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 5.0, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 10, cfg.HTTP.RateLimitBurst)
	assert.Equal(t, "phc_plantnet", cfg.Mongo.Database)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Empty(t, cfg.Redis.Addr, "redis stays disabled unless REDIS_ADDR is set")
}

func TestFromLookuper_Overrides(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET": "s3cret",
		"ENV":                 "production",
		"PORT":                "9000",
		"SESSION_TTL":         "2h",
		"CORS_ORIGINS":        "https://plantnet.example.com",
		"REDIS_ADDR":          "cache:6379",
		"REDIS_DB":            "3",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://plantnet.example.com"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestFromLookuper_SecretRequired(t *testing.T) {
	_, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)

	_, err = FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET": "  ",
	}))
	assert.Error(t, err)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ACCESS_TOKEN_SECRET=from-file\nMONGO_DB=plantnet_test\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ACCESS_TOKEN_SECRET")
		os.Unsetenv("MONGO_DB")
	})

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Session.Secret)
	assert.Equal(t, "plantnet_test", cfg.Mongo.Database)
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "from-env")

	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.Secret)
}
