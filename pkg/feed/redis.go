package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Config holds the Redis feed settings, loadable from the environment.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Channel        string        `env:"FEED_REDIS_CHANNEL" envDefault:"ne-fsm.events"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Connect establishes a Redis client, pinging with retries until the server
// answers or the connect timeout expires.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}
	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrRedisNotReady
}

// Codec translates events to and from pub/sub payloads.
type Codec[E any] interface {
	Encode(event E) ([]byte, error)
	Decode(payload []byte) (E, error)
}

// JSONCodec encodes events as JSON.
type JSONCodec[E any] struct{}

func (JSONCodec[E]) Encode(event E) ([]byte, error) {
	return json.Marshal(event)
}

func (JSONCodec[E]) Decode(payload []byte) (E, error) {
	var event E
	if err := json.Unmarshal(payload, &event); err != nil {
		var zero E
		return zero, err
	}
	return event, nil
}

type redisSettings struct {
	buffer int
	logger *slog.Logger
}

// RedisOption configures a RedisFeed.
type RedisOption func(*redisSettings)

// WithBuffer sets the per-subscriber buffer size. Defaults to 16.
func WithBuffer(n int) RedisOption {
	return func(s *redisSettings) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// WithLogger sets the logger used to report dropped payloads. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) RedisOption {
	return func(s *redisSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// RedisFeed carries events across processes over one Redis pub/sub channel.
// The feed takes ownership of the client; Close closes it.
type RedisFeed[E any] struct {
	client  *redis.Client
	channel string
	codec   Codec[E]
	buffer  int
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewRedisFeed wraps an established client (see Connect). channel names the
// pub/sub channel all participating processes share; codec translates
// events to payloads.
func NewRedisFeed[E any](client *redis.Client, channel string, codec Codec[E], opts ...RedisOption) *RedisFeed[E] {
	s := redisSettings{buffer: 16, logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return &RedisFeed[E]{
		client:  client,
		channel: channel,
		codec:   codec,
		buffer:  s.buffer,
		logger:  s.logger,
	}
}

// Publish encodes one event and publishes it to the feed's channel.
func (f *RedisFeed[E]) Publish(ctx context.Context, event E) error {
	if f.isClosed() {
		return ErrFeedClosed
	}
	payload, err := f.codec.Encode(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return f.client.Publish(ctx, f.channel, payload).Err()
}

// Subscribe opens a pub/sub subscription and waits for the server to
// confirm it, so no event published after Subscribe returns is missed.
func (f *RedisFeed[E]) Subscribe(ctx context.Context) (Subscriber[E], error) {
	if f.isClosed() {
		return nil, ErrFeedClosed
	}
	pubsub := f.client.Subscribe(ctx, f.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", f.channel, err)
	}
	sub := &redisSub[E]{
		id:     uuid.NewString(),
		pubsub: pubsub,
		ch:     make(chan E, f.buffer),
	}
	go sub.run(f.codec, f.logger)
	return sub, nil
}

// Close closes the underlying client; open subscriptions end with it.
// Idempotent.
func (f *RedisFeed[E]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.client.Close()
}

func (f *RedisFeed[E]) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type redisSub[E any] struct {
	id     string
	pubsub *redis.PubSub
	ch     chan E
	once   sync.Once
}

func (s *redisSub[E]) run(codec Codec[E], logger *slog.Logger) {
	defer close(s.ch)
	for msg := range s.pubsub.Channel() {
		event, err := codec.Decode([]byte(msg.Payload))
		if err != nil {
			logger.Warn("dropping undecodable event", "subscriber", s.id, "channel", msg.Channel, "error", err)
			continue
		}
		select {
		case s.ch <- event:
		default:
			logger.Warn("dropping event for slow subscriber", "subscriber", s.id, "channel", msg.Channel)
		}
	}
}

func (s *redisSub[E]) Events() <-chan E {
	return s.ch
}

// Close ends the subscription; the event channel closes once the reader
// goroutine drains. Idempotent.
func (s *redisSub[E]) Close() error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
	})
	return err
}
