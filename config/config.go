package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Log     LogConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Session SessionConfig
	Seed    SeedConfig
	Audit   AuditConfig
}

type AppConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type SessionConfig struct {
	CookieName   string
	CookieSecure bool
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

type AuditConfig struct {
	ViewLimit int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SQLITE_PATH", "portal.db")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_COOKIE_NAME", "portal_session")
	viper.SetDefault("SESSION_COOKIE_SECURE", false)
	viper.SetDefault("SEED_ADMIN_EMAIL", "admin@graphenetrace.com")
	viper.SetDefault("SEED_ADMIN_PASSWORD", "Admin@123")
	viper.SetDefault("AUDIT_VIEW_LIMIT", 500)
}

// LoadConfig reads .env when present, then the environment
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 12 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			CORSOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:      viper.GetString("DB_DRIVER"),
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			SQLitePath:  viper.GetString("DB_SQLITE_PATH"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Session: SessionConfig{
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: viper.GetBool("SESSION_COOKIE_SECURE"),
		},
		Seed: SeedConfig{
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
		},
		Audit: AuditConfig{
			ViewLimit: viper.GetInt("AUDIT_VIEW_LIMIT"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseLogLevel falls back to info for unknown levels
func ParseLogLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// WatchLogLevel re-applies LOG_LEVEL whenever the .env file changes
func WatchLogLevel(log *logrus.Logger) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level := ParseLogLevel(viper.GetString("LOG_LEVEL"))
		if level != log.GetLevel() {
			log.SetLevel(level)
			log.Infof("Log level changed to %s", level)
		}
	})
	viper.WatchConfig()
}
