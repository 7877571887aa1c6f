package kgsearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/serplens/kgprofile/pkg/config"
	"github.com/sony/gobreaker"
)

// BreakerClient wraps a Searcher with circuit breaking logic. When the
// Knowledge Graph API keeps failing (quota exhaustion, outage), the breaker
// opens and calls fail fast instead of burning the remaining quota.
type BreakerClient struct {
	client Searcher
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

// NewBreakerClient creates a circuit-breaking wrapper around client.
func NewBreakerClient(client Searcher, cfg config.CircuitBreakerConfig, logger *slog.Logger, name string) *BreakerClient {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				logger.Warn("circuit breaker opened, knowledge graph calls will fail fast",
					"breaker", name, "from", from.String(), "to", to.String())
			} else {
				logger.Info("circuit breaker state changed",
					"breaker", name, "from", from.String(), "to", to.String())
			}
		},
	}

	return &BreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(st),
		logger: logger,
	}
}

// Search implements Searcher.
func (c *BreakerClient) Search(ctx context.Context, query string, limit int) (*Response, error) {
	resp, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.Search(ctx, query, limit)
	})

	if err != nil {
		return nil, err
	}
	return resp.(*Response), nil
}
