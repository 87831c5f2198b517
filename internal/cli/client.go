package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/api"
	"github.com/rshade/postdeck/internal/cache"
	"github.com/rshade/postdeck/internal/config"
	"github.com/rshade/postdeck/pkg/version"
)

type registryKey struct{}

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func contextWithRegistry(ctx context.Context, reg *prometheus.Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// registryFromContext returns the per-command metrics registry, creating a
// throwaway one when none was installed.
func registryFromContext(ctx context.Context) *prometheus.Registry {
	if reg, ok := ctx.Value(registryKey{}).(*prometheus.Registry); ok {
		return reg
	}
	return newRegistry()
}

// newAPIClient builds a backend client from the global configuration. The
// response cache is attached only when enabled.
func newAPIClient(cmd *cobra.Command) (*api.Client, error) {
	cfg := config.GetGlobalConfig()

	var respCache api.ResponseCache
	if cfg.Cache.Enabled {
		store, err := cache.NewFileStore(cfg.Cache.Directory, true, cfg.Cache.TTLSeconds)
		if err != nil {
			logger.Warn().Err(err).Str("dir", cfg.Cache.Directory).Msg("response cache disabled")
		} else {
			respCache = store
		}
	}

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("%s/%s", version.Name, version.GetVersion())
	}

	client, err := api.NewClient(api.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		UserAgent:  userAgent,
		Logger:     logger,
		Registerer: registryFromContext(cmd.Context()),
		Cache:      respCache,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}
	return client, nil
}

// logMetrics writes a summary of the client metrics at debug level.
func logMetrics(cmd *cobra.Command) {
	if logger.GetLevel() > zerolog.DebugLevel || cmd.Context() == nil {
		return
	}
	reg, ok := cmd.Context().Value(registryKey{}).(*prometheus.Registry)
	if !ok {
		return
	}

	families, err := reg.Gather()
	if err != nil {
		logger.Debug().Err(err).Msg("gathering metrics failed")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			event := logger.Debug().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				event = event.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				event = event.Float64("value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				event = event.Float64("value", m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				event = event.
					Uint64("count", m.GetHistogram().GetSampleCount()).
					Float64("sum", m.GetHistogram().GetSampleSum())
			}
			event.Msg("client metric")
		}
	}
}
