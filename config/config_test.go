package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")
	t.Setenv("JWT_CLIENT_SECRET", "client-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "liftsforlife", cfg.DatabaseName)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGODB_URI", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresBothJWTSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_CLIENT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestAllowedOriginsAreSplitAndTrimmed(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", " https://liftsforlife.org , http://localhost:3000 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://liftsforlife.org", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestSeedAdminEmailIsNormalized(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_EMAIL", "  Admin@Example.COM ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", cfg.SeedAdminEmail)
}
