package feed

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireEvent struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

func TestJSONCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		codec := JSONCodec[wireEvent]{}

		payload, err := codec.Encode(wireEvent{Kind: "tick", Count: 3})
		require.NoError(t, err)

		got, err := codec.Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, wireEvent{Kind: "tick", Count: 3}, got)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		codec := JSONCodec[wireEvent]{}

		_, err := codec.Decode([]byte("{not json"))
		require.Error(t, err)
	})
}

func TestConnect(t *testing.T) {
	t.Run("rejects malformed URLs", func(t *testing.T) {
		_, err := Connect(context.Background(), Config{ConnectionURL: "not-a-url"})
		require.ErrorIs(t, err, ErrInvalidRedisURL)
	})

	t.Run("gives up on unreachable servers", func(t *testing.T) {
		cfg := Config{
			ConnectionURL:  "redis://127.0.0.1:1/0",
			RetryAttempts:  1,
			RetryInterval:  time.Millisecond,
			ConnectTimeout: 500 * time.Millisecond,
		}
		_, err := Connect(context.Background(), cfg)
		require.ErrorIs(t, err, ErrRedisNotReady)
	})
}

func TestRedisFeed_Close(t *testing.T) {
	// go-redis connects lazily, so a feed over an unreachable address
	// still exercises the close bookkeeping without a server.
	newFeed := func() *RedisFeed[wireEvent] {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		return NewRedisFeed(client, "events", JSONCodec[wireEvent]{})
	}

	t.Run("publish after close returns error", func(t *testing.T) {
		f := newFeed()
		require.NoError(t, f.Close())

		err := f.Publish(context.Background(), wireEvent{Kind: "tick"})
		require.ErrorIs(t, err, ErrFeedClosed)
	})

	t.Run("subscribe after close returns error", func(t *testing.T) {
		f := newFeed()
		require.NoError(t, f.Close())

		_, err := f.Subscribe(context.Background())
		require.ErrorIs(t, err, ErrFeedClosed)
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := newFeed()
		require.NoError(t, f.Close())
		require.NoError(t, f.Close())
	})
}

func TestRedisOptions(t *testing.T) {
	s := redisSettings{buffer: 16}
	WithBuffer(64)(&s)
	assert.Equal(t, 64, s.buffer)

	WithBuffer(0)(&s) // ignored, keeps the previous value
	assert.Equal(t, 64, s.buffer)
}
