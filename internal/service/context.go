package service

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	actorIDKey       contextKey = "actor_id"
	actorEmailKey    contextKey = "actor_email"
	correlationIDKey contextKey = "correlation_id"
)

// WithActor stores the authenticated caller in ctx
func WithActor(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, userID)
	return context.WithValue(ctx, actorEmailKey, email)
}

// ActorFromContext returns the authenticated caller, if any
func ActorFromContext(ctx context.Context) (uuid.UUID, string, bool) {
	id, ok := ctx.Value(actorIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	email, _ := ctx.Value(actorEmailKey).(string)
	return id, email, true
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
