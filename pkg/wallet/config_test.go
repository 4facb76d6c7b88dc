package wallet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mintshell/pkg/config"
	"github.com/dmitrymomot/mintshell/pkg/memmint"
	"github.com/dmitrymomot/mintshell/pkg/sink"
	"github.com/dmitrymomot/mintshell/pkg/wallet"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		cfg, err := wallet.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, wallet.DefaultPollInterval, cfg.PollInterval)
		assert.InDelta(t, wallet.DefaultPollMultiplier, cfg.PollMultiplier, 1e-9)
		assert.Equal(t, wallet.DefaultOperationDeadline, cfg.OperationDeadline)
		assert.Equal(t, wallet.DefaultCommandBuffer, cfg.CommandBuffer)
		assert.Equal(t, 100, cfg.EventBuffer)
		assert.Zero(t, cfg.SummaryRefreshDelay)
		assert.Zero(t, cfg.QRCodeSize)
	})

	t.Run("prefixed variables", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		t.Setenv("MINTSHELL_POLL_INTERVAL", "500ms")
		t.Setenv("MINTSHELL_POLL_MULTIPLIER", "1.5")
		t.Setenv("MINTSHELL_OPERATION_DEADLINE", "30s")
		t.Setenv("MINTSHELL_COMMAND_BUFFER", "8")
		t.Setenv("MINTSHELL_QR_CODE_SIZE", "128")
		// unprefixed names are ignored
		t.Setenv("POLL_INTERVAL", "1h")

		cfg, err := wallet.LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
		assert.InDelta(t, 1.5, cfg.PollMultiplier, 1e-9)
		assert.Equal(t, 30*time.Second, cfg.OperationDeadline)
		assert.Equal(t, 8, cfg.CommandBuffer)
		assert.Equal(t, 128, cfg.QRCodeSize)
	})

	t.Run("malformed value", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		t.Setenv("MINTSHELL_POLL_INTERVAL", "soon")

		_, err := wallet.LoadConfig()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	cfg := wallet.Config{
		PollInterval:      time.Second,
		PollMultiplier:    1.05,
		OperationDeadline: time.Minute,
		CommandBuffer:     1,
	}

	a, err := wallet.New(memmint.New().Connector(), cfg.Options()...)
	require.NoError(t, err)

	_, err = a.Submit(wallet.GetSummary{})
	require.NoError(t, err)
	_, err = a.Submit(wallet.GetSummary{})
	assert.ErrorIs(t, err, wallet.ErrCommandQueueFull, "command buffer comes from config")
}

func TestConfig_EventChannel(t *testing.T) {
	t.Parallel()

	events := wallet.Config{EventBuffer: 2}.EventChannel()
	require.NoError(t, events.Deliver(context.Background(), wallet.Envelope{}))
	require.NoError(t, events.Deliver(context.Background(), wallet.Envelope{}))
	assert.ErrorIs(t, events.Deliver(context.Background(), wallet.Envelope{}), sink.ErrFull)
}
