// Command fsm-call plays a scripted phone call through the asynchronous
// state machine. The script comes from a YAML scenario file when
// SCENARIO_FILE is set, otherwise a built-in scenario is used.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nano-e/ne-fsm/internal/config"
	"github.com/nano-e/ne-fsm/internal/logging"
	"github.com/nano-e/ne-fsm/pkg/feed"
	"github.com/nano-e/ne-fsm/pkg/fsm"
)

type appConfig struct {
	ScenarioPath string `env:"SCENARIO_FILE"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"debug"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	MaxRetries   int    `env:"CALL_MAX_RETRIES" envDefault:"3"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logging.New(
		logging.WithLevel(logging.ParseLevel(cfg.LogLevel)),
		logging.WithFormat(logging.Format(cfg.LogFormat)),
		logging.WithService("fsm-call"),
	)

	scenario := defaultScenario()
	if cfg.ScenarioPath != "" {
		loaded, err := loadScenario(cfg.ScenarioPath)
		if err != nil {
			log.Error("cannot load scenario", "path", cfg.ScenarioPath, "error", err)
			os.Exit(1)
		}
		scenario = loaded
	}

	if err := run(ctx, log, cfg, scenario); err != nil {
		log.Error("call demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, cfg appConfig, scenario *Scenario) error {
	call := fsm.NewAsync(
		newCallRegistry(log).Factory(),
		CallContext{SessionID: uuid.NewString(), MaxRetries: cfg.MaxRetries},
		nil,
		fsm.WithLogger(log),
	)
	if err := call.Init(ctx, CallIdle); err != nil {
		return err
	}

	events := feed.NewChannel[CallEvent](len(scenario.Steps))
	go playScenario(ctx, events, scenario)

	for event := range events.Events() {
		if err := call.ProcessEvent(ctx, event); err != nil {
			log.Warn("event not processed", "event", string(event), "error", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	state, _ := call.Current()
	log.Info("scenario finished",
		"scenario", scenario.Name,
		"state", string(state),
		"session_id", call.Context().SessionID,
	)
	return nil
}

// playScenario feeds the scripted events into the channel, honoring each
// step's delay, and closes the channel when the script ends.
func playScenario(ctx context.Context, events *feed.Channel[CallEvent], s *Scenario) {
	defer events.Close()
	for _, step := range s.Steps {
		if step.Delay > 0 {
			select {
			case <-time.After(time.Duration(step.Delay)):
			case <-ctx.Done():
				return
			}
		}
		if err := events.Send(ctx, step.Event); err != nil {
			return
		}
	}
}
