package database

import (
	"context"
	"database/sql"
	"time"
)

// ReadinessChecker pings the database for the health endpoint
type ReadinessChecker struct {
	db *sql.DB
}

func NewReadinessChecker(db *sql.DB) *ReadinessChecker {
	return &ReadinessChecker{db: db}
}

// CheckReady returns "ok" or "fail" with a short message
func (c *ReadinessChecker) CheckReady(ctx context.Context) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return "fail", "database unreachable: " + err.Error()
	}
	return "ok", "database reachable"
}
