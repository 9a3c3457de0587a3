package database

import (
	"embed"
	"fmt"
	"net"
	"net/url"

	"graphene-trace-portal/config"
	"graphene-trace-portal/internal/domain/entity"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Models lists every table owned by the portal
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Role{},
		&entity.UserRole{},
		&entity.Assignment{},
		&entity.UserDomain{},
		&entity.SystemSettings{},
		&entity.AuditLog{},
	}
}

// Migrate brings the schema up to date. Postgres runs the embedded SQL migrations,
// SQLite is migrated from the gorm models.
func Migrate(cfg config.DBConfig, db *gorm.DB, log *logrus.Logger) error {
	if cfg.Driver == config.DriverSQLite {
		return AutoMigrate(db)
	}
	return MigratePostgres(cfg, log)
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

// MigrationURL builds the pgx5 connection URL golang-migrate expects
func MigrationURL(cfg config.DBConfig) string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func MigratePostgres(cfg config.DBConfig, log *logrus.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migrations applied")

	return nil
}
