package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel("WARN"))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("loud"))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel(""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a ,, http://b,"))
	assert.Nil(t, splitList(""))
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://one, http://two")
	t.Setenv("AUDIT_VIEW_LIMIT", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, []string{"http://one", "http://two"}, cfg.App.CORSOrigins)
	assert.Equal(t, 50, cfg.Audit.ViewLimit)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "portal_session", cfg.Session.CookieName)
	assert.Equal(t, "admin@graphenetrace.com", cfg.Seed.AdminEmail)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidExpiryFallsBack(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AccessExpiry)
}
