package wallet

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mintshell/pkg/config"
	"github.com/dmitrymomot/mintshell/pkg/logger"
	"github.com/dmitrymomot/mintshell/pkg/sink"
)

// Config holds actor settings loaded from the environment.
type Config struct {
	PollInterval        time.Duration `env:"POLL_INTERVAL" envDefault:"2s"`
	PollMultiplier      float64       `env:"POLL_MULTIPLIER" envDefault:"1.05"`
	OperationDeadline   time.Duration `env:"OPERATION_DEADLINE" envDefault:"5m"`
	CommandBuffer       int           `env:"COMMAND_BUFFER" envDefault:"100"`
	EventBuffer         int           `env:"EVENT_BUFFER" envDefault:"100"`
	SummaryRefreshDelay time.Duration `env:"SUMMARY_REFRESH_DELAY" envDefault:"0s"`
	QRCodeSize          int           `env:"QR_CODE_SIZE" envDefault:"0"`

	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`
}

// EnvPrefix is prepended to every Config variable.
const EnvPrefix = "MINTSHELL_"

// LoadConfig reads Config from MINTSHELL_* variables and the optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, config.WithPrefix(EnvPrefix)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds the actor logger: text at debug level in development, JSON at
// info level in production. LogLevel overrides the preset level.
func (c Config) Logger() *slog.Logger {
	return logger.New(
		logger.WithEnvironment(c.Environment, "mintshell"),
		logger.WithLevelName(c.LogLevel),
		logger.WithContextExtractors(LogRequestID),
	)
}

// Options converts the config to actor options.
func (c Config) Options() []Option {
	return []Option{
		WithLogger(c.Logger()),
		WithPollPolicy(c.PollInterval, c.PollMultiplier, c.OperationDeadline),
		WithCommandBuffer(c.CommandBuffer),
		WithSummaryRefreshDelay(c.SummaryRefreshDelay),
		WithArtifactQRCode(c.QRCodeSize),
	}
}

// EventChannel returns a channel sink sized by EventBuffer, ready to pass in Init.
func (c Config) EventChannel() *sink.Channel[Envelope] {
	return sink.NewChannel[Envelope](c.EventBuffer)
}
