package redis_wrapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	cfg := &RedisConfig{
		ConnectionURL:       "redis://:secret@cache:6380/2",
		PoolSize:            20,
		DialTimeoutSeconds:  5,
		ReadTimeoutSeconds:  3,
		WriteTimeoutSeconds: 4,
	}

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 3*time.Second, opts.ReadTimeout)
	assert.Equal(t, 4*time.Second, opts.WriteTimeout)
}

func TestOptionsBadURL(t *testing.T) {
	_, err := (&RedisConfig{ConnectionURL: "http://cache"}).Options()
	assert.Error(t, err)
}
