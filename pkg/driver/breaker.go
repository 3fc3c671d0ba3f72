package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/stakegraph/stakegraph/pkg/alert"
	"github.com/stakegraph/stakegraph/pkg/config"
	"github.com/stakegraph/stakegraph/pkg/types"
)

// BreakerClient wraps a Client with circuit breaking logic. A tripped
// breaker fails fast with the breaker's error instead of hammering an
// unhealthy backend; state changes to open raise an alert.
type BreakerClient struct {
	client  Client
	cb      *gobreaker.CircuitBreaker
	alerter alert.Alerter
	name    string
}

var _ Client = (*BreakerClient)(nil)

// NewBreakerClient creates a circuit-breaking wrapper around client.
func NewBreakerClient(client Client, cfg config.CircuitBreakerConfig, alerter alert.Alerter, name string, logger *slog.Logger) *BreakerClient {
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
				msg := fmt.Sprintf("Circuit breaker %q changed state from %s to %s. Too many upstream failures.", name, from, to)
				if alerter != nil {
					_ = alerter.Alert(fmt.Sprintf("URGENT: Circuit Breaker Tripped - %s", name), msg)
				}
				logger.Warn("circuit breaker tripped", "breaker", name, "from", from.String(), "to", to.String())
			}
		},
	}

	return &BreakerClient{
		client:  client,
		cb:      gobreaker.NewCircuitBreaker(st),
		alerter: alerter,
		name:    name,
	}
}

// AccountMetadata implements Client.
func (c *BreakerClient) AccountMetadata(ctx context.Context, accountID string) (*types.Account, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.AccountMetadata(ctx, accountID)
	})
	if err != nil {
		return nil, err
	}
	return res.(*types.Account), nil
}

// AccountPositions implements Client.
func (c *BreakerClient) AccountPositions(ctx context.Context, accountID string, filter *PositionFilter) ([]types.Position, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.AccountPositions(ctx, accountID, filter)
	})
	if err != nil {
		return nil, err
	}
	return res.([]types.Position), nil
}

// SearchPositions implements Client.
func (c *BreakerClient) SearchPositions(ctx context.Context, query string, limit int) ([]types.Position, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.SearchPositions(ctx, query, limit)
	})
	if err != nil {
		return nil, err
	}
	return res.([]types.Position), nil
}

// FollowTriples implements Client.
func (c *BreakerClient) FollowTriples(ctx context.Context, accountID string, direction FollowDirection) ([]types.Triple, error) {
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.FollowTriples(ctx, accountID, direction)
	})
	if err != nil {
		return nil, err
	}
	return res.([]types.Triple), nil
}

// Close implements Client.
func (c *BreakerClient) Close() error {
	return c.client.Close()
}
