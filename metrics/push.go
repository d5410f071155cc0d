package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// PushConfig describes a prometheus pushgateway.
type PushConfig struct {
	URL      string            `mapstructure:"url"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Headers  map[string]string `mapstructure:"headers"`
	Period   time.Duration     `mapstructure:"period"`
}

// Push sends metrics gathered by gatherer to the gateway every period, until ctx is canceled.
// Failed pushes are logged and retried on the next tick.
func Push(ctx context.Context, logger *zap.Logger, gatherer prometheus.Gatherer, cfg PushConfig, instance string) error {
	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Add(k, v)
	}
	pusher := push.New(cfg.URL, Namespace).Gatherer(gatherer).
		Grouping("instance", instance).
		Header(header)
	if cfg.Username != "" && cfg.Password != "" {
		pusher = pusher.BasicAuth(cfg.Username, cfg.Password)
	}
	ticker := time.NewTicker(cfg.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// final push so that the last observations are not lost
			if err := pusher.Push(); err != nil {
				logger.Warn("failed to push metrics", zap.Error(err))
			}
			return nil
		case <-ticker.C:
			if err := pusher.PushContext(ctx); err != nil {
				logger.Warn("failed to push metrics", zap.Error(err))
			}
		}
	}
}
