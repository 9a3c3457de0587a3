// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"graphene-trace-portal/config"
	"graphene-trace-portal/internal/infrastructure/database"
	"graphene-trace-portal/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Logger discards output
func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewDB opens a migrated in-memory SQLite database private to the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := database.NewSQLiteConnection(dsn, Logger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewRedis starts a miniredis server and returns a client for it
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

// NewJWTService signs with a fixed test secret
func NewJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
}
