// Package health maintains a cached liveness flag for the service's
// dependencies so the health endpoint never blocks on a slow database.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Checker polls a Pinger on an interval and caches the result.
type Checker struct {
	name    string
	pinger  Pinger
	healthy atomic.Int32
	log     zerolog.Logger
}

func NewChecker(name string, p Pinger, log zerolog.Logger) *Checker {
	return &Checker{name: name, pinger: p, log: log}
}

func (c *Checker) Name() string { return c.name }

// IsHealthy returns the cached result of the most recent probe.
func (c *Checker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Start probes immediately, then on every tick until ctx is cancelled.
// Transitions are logged once, not on every tick.
func (c *Checker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := int32(-1)
	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		cur := int32(1)
		if err := c.pinger.HealthPing(pctx); err != nil {
			cur = 0
			if prev != 0 {
				c.log.Error().Err(err).Str("component", c.name).Msg("health probe failed")
			}
		} else if prev != 1 {
			c.log.Info().Str("component", c.name).Msg("health probe ok")
		}
		c.healthy.Store(cur)
		prev = cur
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
