package fsm

import "log/slog"

type settings struct {
	logger *slog.Logger
}

func defaultSettings() settings {
	return settings{logger: slog.Default()}
}

// Option configures a Machine or an AsyncMachine at construction time.
type Option func(*settings)

// WithLogger sets the logger used for debug-level transition logging.
// Defaults to slog.Default(). Error paths are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
