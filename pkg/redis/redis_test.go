package redis

import (
	"context"
	"testing"

	"github.com/avolkova/foodgram-backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_UnreachableServerLeavesClientNil(t *testing.T) {
	client = nil

	err := Init(&config.RedisConfig{
		Host: "127.0.0.1",
		Port: "1",
	})
	require.Error(t, err)
	assert.Nil(t, GetClient())
}

func TestIsTokenBlacklisted_DegradedMode(t *testing.T) {
	client = nil

	_ = Init(&config.RedisConfig{
		Host: "127.0.0.1",
		Port: "1",
	})

	// Without redis, tokens are never reported revoked and auth keeps working.
	revoked, err := IsTokenBlacklisted(context.Background(), "some-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistToken_WithoutClient(t *testing.T) {
	client = nil

	err := BlacklistToken(context.Background(), "some-token", 0)
	assert.Error(t, err)
}
