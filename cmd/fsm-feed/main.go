// Command fsm-feed supervises a simulated network link with the synchronous
// state machine, fed by a stream of link events. Events travel through an
// in-process hub by default; set FEED_SOURCE=redis to carry them over a
// Redis pub/sub channel shared with other processes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nano-e/ne-fsm/internal/config"
	"github.com/nano-e/ne-fsm/internal/logging"
	"github.com/nano-e/ne-fsm/pkg/feed"
	"github.com/nano-e/ne-fsm/pkg/fsm"
)

type appConfig struct {
	Source    string        `env:"FEED_SOURCE" envDefault:"hub"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"debug"`
	LogFormat string        `env:"LOG_FORMAT" envDefault:"text"`
	TickEvery time.Duration `env:"FEED_TICK_INTERVAL" envDefault:"500ms"`
	RunFor    time.Duration `env:"FEED_RUN_DURATION" envDefault:"5s"`
	Redis     feed.Config
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logging.New(
		logging.WithLevel(logging.ParseLevel(cfg.LogLevel)),
		logging.WithFormat(logging.Format(cfg.LogFormat)),
		logging.WithService("fsm-feed"),
	)

	if err := run(ctx, log, cfg); err != nil {
		log.Error("feed demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg appConfig) error {
	f, err := newFeed(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	link := fsm.New(newLinkRegistry(log).Factory(), LinkContext{}, nil, fsm.WithLogger(log))
	if err := link.Init(LinkDown); err != nil {
		return err
	}

	// Subscribe before producing so the first events are not dropped.
	sub, err := f.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	runCtx, cancel := context.WithTimeout(ctx, cfg.RunFor)
	defer cancel()

	ticker := feed.NewTicker(cfg.TickEvery, alternator())
	defer ticker.Stop()
	go publish(runCtx, log, f, ticker)

	for {
		select {
		case <-runCtx.Done():
			state, _ := link.Current()
			c := link.Context()
			log.Info("feed demo finished",
				"state", string(state),
				"attempts", c.Attempts,
				"drops", c.Drops,
			)
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := link.ProcessEvent(event); err != nil {
				log.Warn("event not processed", "kind", event.Kind, "error", err)
			}
		}
	}
}

func newFeed(ctx context.Context, log *slog.Logger, cfg appConfig) (feed.Feed[LinkEvent], error) {
	switch cfg.Source {
	case "redis":
		client, err := feed.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return feed.NewRedisFeed(client, cfg.Redis.Channel, feed.JSONCodec[LinkEvent]{}, feed.WithLogger(log)), nil
	case "hub":
		return feed.NewHub[LinkEvent](16), nil
	default:
		return nil, fmt.Errorf("unknown feed source %q", cfg.Source)
	}
}

// alternator yields link-started and link-lost in turn so the supervisor
// keeps cycling through its states.
func alternator() func() LinkEvent {
	up := false
	return func() LinkEvent {
		up = !up
		kind := EventLinkStarted
		if !up {
			kind = EventLinkLost
		}
		return LinkEvent{Kind: kind, At: time.Now().UTC()}
	}
}

func publish(ctx context.Context, log *slog.Logger, f feed.Feed[LinkEvent], ticker *feed.Ticker[LinkEvent]) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ticker.Events():
			if !ok {
				return
			}
			if err := f.Publish(ctx, event); err != nil {
				log.Warn("publish failed", "kind", event.Kind, "error", err)
				return
			}
		}
	}
}
