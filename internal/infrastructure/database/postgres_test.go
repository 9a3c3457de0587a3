package database

import (
	"net/url"
	"testing"

	"graphene-trace-portal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{Host: "db", Port: "5432", User: "portal", Password: "secret", Name: "portal", SSLMode: "disable"})
	assert.Equal(t, "host=db user=portal password=secret dbname=portal port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestMigrationURL_EscapesCredentials(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: "5432", User: "portal admin", Password: "p@ss w:rd/+?#%", Name: "portal", SSLMode: "require"}

	parsed, err := url.Parse(MigrationURL(cfg))
	require.NoError(t, err)

	assert.Equal(t, "pgx5", parsed.Scheme)
	assert.Equal(t, "portal admin", parsed.User.Username())
	password, ok := parsed.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss w:rd/+?#%", password)
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/portal", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(config.DBConfig{Driver: "mysql"}, logrus.New())
	assert.Error(t, err)
}

func TestAutoMigrate_SQLite(t *testing.T) {
	db, err := NewSQLiteConnection("file:automigrate?mode=memory&cache=shared", logrus.New())
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	for _, table := range []string{"users", "roles", "user_roles", "clinician_patient_assignments", "user_domains", "system_settings", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
