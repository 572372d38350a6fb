// Package commands implements CLI command handlers for calheat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/calheat/pkg/config"
	"github.com/Sumatoshi-tech/calheat/pkg/observability"
	"github.com/Sumatoshi-tech/calheat/pkg/version"
)

// GlobalOptions holds the persistent root flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	LogJSON    bool
}

// session is the per-command runtime: configuration, telemetry and logger.
type session struct {
	cfg       *config.Config
	providers observability.Providers
	logger    *slog.Logger
	metrics   *observability.EngineMetrics
}

// open loads configuration and starts telemetry. Normalization warnings are
// logged once the logger exists. Callers must close the session.
func (g *GlobalOptions) open(ctx context.Context, logOut io.Writer) (*session, error) {
	cfg, err := config.LoadConfig(g.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	warnings := cfg.Normalize()

	providers, err := observability.Init(g.observabilityConfig(cfg, logOut))
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewEngineMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create metrics: %w", err), providers.Shutdown(ctx))
	}

	for _, w := range warnings {
		providers.Logger.WarnContext(ctx, "config adjusted", "detail", w)
	}

	return &session{
		cfg:       cfg,
		providers: providers,
		logger:    providers.Logger,
		metrics:   metrics,
	}, nil
}

func (g *GlobalOptions) observabilityConfig(cfg *config.Config, logOut io.Writer) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.MetricsTextfile = cfg.Telemetry.MetricsTextfile
	obsCfg.LogJSON = g.LogJSON || cfg.Logging.JSON
	obsCfg.LogOutput = logOut
	obsCfg.LogLevel = cfg.LogLevel()

	if cfg.Telemetry.MetricsTextfile != "" {
		obsCfg.Mode = observability.ModeBatch
	}

	switch {
	case g.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case g.Quiet:
		obsCfg.LogLevel = slog.LevelWarn
	}

	return obsCfg
}

// close flushes telemetry.
func (s *session) close(ctx context.Context) error {
	err := s.providers.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown observability: %w", err)
	}

	return nil
}
