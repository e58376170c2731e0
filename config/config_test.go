package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(100), cfg.FastDeliveryFee)
	assert.Equal(t, time.Hour, cfg.CheckoutSessionTTL)
	assert.Equal(t, "log", cfg.NotifyProvider)
	assert.Equal(t, uint(1280), cfg.MaxProofWidth)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("FAST_DELIVERY_FEE", "150")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, int64(150), cfg.FastDeliveryFee)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("FAST_DELIVERY_FEE", "abc")
	t.Setenv("OTP_TTL", "soon")
	t.Setenv("MAX_PROOF_WIDTH", "-5")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(100), cfg.FastDeliveryFee)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, uint(1280), cfg.MaxProofWidth)
	assert.Equal(t, "9000", cfg.Port)
	assert.Len(t, cfg.Warnings, 3)
	assert.Empty(t, mustLoadClean(t).Warnings)
}

func mustLoadClean(t *testing.T) *Config {
	t.Helper()
	t.Setenv("FAST_DELIVERY_FEE", "150")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("MAX_PROOF_WIDTH", "800")
	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "shop"}
	assert.Equal(t, "host=db user=u password=p dbname=shop port=5432 sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.DSN())
}
