package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const flashTTL = 5 * time.Minute

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot banner shown on the next listing of the admin user page
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type FlashService interface {
	Set(ctx context.Context, sessionID string, flash Flash) error
	// Pop returns the pending banner and clears it; nil when none is pending
	Pop(ctx context.Context, sessionID string) (*Flash, error)
}

type flashService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewFlashService(redisClient *redis.Client, log *logrus.Logger) FlashService {
	return &flashService{redisClient: redisClient, log: log}
}

func flashKey(sessionID string) string {
	return "flash:" + sessionID
}

func (s *flashService) Set(ctx context.Context, sessionID string, flash Flash) error {
	if sessionID == "" {
		return nil
	}
	payload, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	if err := s.redisClient.Set(ctx, flashKey(sessionID), payload, flashTTL).Err(); err != nil {
		s.log.Warnf("Failed to store flash message: %+v", err)
		return err
	}
	return nil
}

func (s *flashService) Pop(ctx context.Context, sessionID string) (*Flash, error) {
	if sessionID == "" {
		return nil, nil
	}
	payload, err := s.redisClient.GetDel(ctx, flashKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.log.Warnf("Failed to read flash message: %+v", err)
		return nil, err
	}

	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return nil, err
	}
	return &flash, nil
}
