package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		MongoDBURI:           "mongodb://localhost:27017",
		DatabaseName:         "notes_block_db",
		SessionTTL:           720 * time.Hour,
		SessionRenewalWindow: 360 * time.Hour,
		BcryptCost:           10,
		CookieName:           "notes_session",
		CookiePath:           "/",
		CookieSameSite:       "Lax",
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "notes_block_db", cfg.DatabaseName)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 360*time.Hour, cfg.SessionRenewalWindow)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "notes_session", cfg.CookieName)
	assert.True(t, cfg.CookieHTTPOnly)
}

func TestLoadConfig_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate_RenewalWindowLongerThanTTL(t *testing.T) {
	cfg := validConfig()
	cfg.SessionRenewalWindow = cfg.SessionTTL + time.Hour
	assert.Error(t, cfg.Validate())
}

func TestValidate_BcryptCostBounds(t *testing.T) {
	cfg := validConfig()
	cfg.BcryptCost = 3
	assert.Error(t, cfg.Validate())

	cfg.BcryptCost = 32
	assert.Error(t, cfg.Validate())

	cfg.BcryptCost = 12
	assert.NoError(t, cfg.Validate())
}

func TestValidate_CookieSameSiteNormalized(t *testing.T) {
	cfg := validConfig()
	cfg.CookieSameSite = "strict"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Strict", cfg.CookieSameSite)

	cfg.CookieSameSite = "NONE"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "None", cfg.CookieSameSite)

	cfg.CookieSameSite = "Lax"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Lax", cfg.CookieSameSite)

	cfg.CookieSameSite = "bogus"
	assert.Error(t, cfg.Validate())
}
