package cache

import (
	"testing"

	"graphene-trace-portal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Success(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(config.RedisConfig{Host: mr.Host(), Port: mr.Port()}, logrus.New())
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client)
}

func TestNewRedisClient_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisClient(config.RedisConfig{Host: host, Port: port}, logrus.New())
	assert.Error(t, err)
}
