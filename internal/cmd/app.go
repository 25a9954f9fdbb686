package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/PauloHFS/deepseek/internal/config"
	"github.com/PauloHFS/deepseek/internal/deepseek"
	"github.com/PauloHFS/deepseek/internal/logging"
	"github.com/PauloHFS/deepseek/internal/tracing"
)

const (
	ExitOK        = 0
	ExitUsage     = 1
	ExitConfig    = 2
	ExitTransport = 3
	ExitAPI       = 4
	ExitMalformed = 5
)

var errLoadConfig = errors.New("failed to load config")

type app struct {
	cfg      *config.Config
	client   deepseek.ChatClient
	logger   *slog.Logger
	shutdown tracing.ShutdownFunc
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errLoadConfig, err)
	}

	logger := logging.Init(logging.Options{Env: cfg.Env, Level: cfg.LogLevel})

	shutdown, err := tracing.Init(ctx, cfg.TraceExporter, "deepseek")
	if err != nil {
		return nil, err
	}

	client, err := deepseek.NewClient(
		deepseek.WithAPIKey(cfg.APIKey),
		deepseek.WithBaseURL(cfg.BaseURL),
		deepseek.WithModel(cfg.Model),
		deepseek.WithTemperature(cfg.Temperature),
	)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return &app{
		cfg:      cfg,
		client:   client.WithMetrics(),
		logger:   logger,
		shutdown: shutdown,
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}

// ask runs one prompt inside its own wide log event and timeout.
func (a *app) ask(ctx context.Context, prompt string) (string, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	ctx, event := logging.NewEventContext(ctx)
	start := time.Now()

	reply, err := a.client.Chat(ctx, prompt)

	event.Add(slog.Float64("total_ms", float64(time.Since(start).Milliseconds())))
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
		event.Add(slog.String("error", err.Error()))
	}
	a.logger.Log(ctx, level, "chat completed", event.Attrs()...)

	return reply, err
}

// ExitCode maps an error returned by the client to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, errLoadConfig) {
		return ExitConfig
	}
	switch deepseek.Outcome(err) {
	case deepseek.OutcomeConfig:
		return ExitConfig
	case deepseek.OutcomeTransport:
		return ExitTransport
	case deepseek.OutcomeAPIError:
		return ExitAPI
	case deepseek.OutcomeMalformed:
		return ExitMalformed
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ExitTransport
	}
	return ExitUsage
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if deepseek.IsConfigurationError(err) {
		fmt.Fprintf(os.Stderr, "Set it with: export %s='your-api-key'\n", deepseek.EnvAPIKey)
	}
	os.Exit(ExitCode(err))
}
