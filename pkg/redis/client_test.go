package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBuilders(t *testing.T) {
	client := NewWithClient(nil, "")
	assert.Equal(t, "wm:kv:users", client.KVKey("users"))
	assert.Equal(t, "wm:kv:session:abc", client.KVKey("session:abc"))

	custom := NewWithClient(nil, " demo ")
	assert.Equal(t, "demo:kv:posts", custom.KVKey(" posts "))
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:pw@localhost:6380/2",
		PoolSize:    7,
		DialTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 3})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 3, opts.DB)
}

func TestNewConnectsToServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), config.RedisConfig{Address: mr.Addr(), KeyPrefix: "t"}, nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
	require.NoError(t, client.Raw().Set(context.Background(), client.KVKey("x"), "1", 0).Err())
	assert.True(t, mr.Exists("t:kv:x"))
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), config.RedisConfig{Address: addr, DialTimeout: 100 * time.Millisecond}, nil)
	require.Error(t, err)
}

func TestPingWithoutClient(t *testing.T) {
	client := NewWithClient((*redis.Client)(nil), "")
	require.Error(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
}
