package handler

import (
	"context"
	"net/http"

	"graphene-trace-portal/pkg/response"

	"github.com/redis/go-redis/v9"
)

// DatabaseChecker reports database readiness as "ok" or "fail"
type DatabaseChecker interface {
	CheckReady(ctx context.Context) (string, string)
}

type HealthHandler struct {
	database    DatabaseChecker
	redisClient *redis.Client
}

func NewHealthHandler(database DatabaseChecker, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		database:    database,
		redisClient: redisClient,
	}
}

type componentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	components := make(map[string]componentStatus, 2)

	dbStatus, dbMessage := h.database.CheckReady(r.Context())
	components["database"] = componentStatus{Status: dbStatus, Message: dbMessage}
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	if err := h.redisClient.Ping(r.Context()).Err(); err != nil {
		components["redis"] = componentStatus{Status: "fail", Message: err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		components["redis"] = componentStatus{Status: "ok"}
	}

	response.JSON(w, status, map[string]interface{}{
		"status":     http.StatusText(status),
		"components": components,
	})
}
