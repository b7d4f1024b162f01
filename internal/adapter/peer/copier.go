// Package peer copies the startup-config to a backup switch.
package peer

import (
	"context"
	"fmt"

	"onbox-config-copy/internal/pkg/guard"
	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/pkg/push"
	"onbox-config-copy/internal/pkg/startup"
	"onbox-config-copy/internal/pkg/transform"
	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"
)

// Copier is a configuration copy adapter that implements the ConfigCopier port for
// switch destinations. It fetches the local startup-config, rewrites it for the
// peer and pushes it through the peer's command API.
type Copier struct {
	destination types.Destination
	fetcher     *startup.Fetcher
	transformer *transform.Transformer
	pusher      *push.Pusher
	guard       *guard.Guard
}

// Ensure Copier implements the ConfigCopier port
var _ port.ConfigCopier = (*Copier)(nil)

// NewCopier creates a new peer switch copier.
func NewCopier(destination types.Destination, fetcher *startup.Fetcher, transformer *transform.Transformer, pusher *push.Pusher, g *guard.Guard) (*Copier, error) {
	if destination.Kind != types.KindSwitch {
		return nil, fmt.Errorf("peer copier requires a %q destination, got %q", types.KindSwitch, destination.Kind)
	}
	if destination.Address == "" {
		return nil, fmt.Errorf("destination address is required")
	}

	return &Copier{
		destination: destination,
		fetcher:     fetcher,
		transformer: transformer,
		pusher:      pusher,
		guard:       g,
	}, nil
}

// Destination returns the peer switch this copier delivers to.
func (c *Copier) Destination() types.Destination {
	return c.destination
}

// Copy runs fetch, transform and push once.
func (c *Copier) Copy(ctx context.Context) error {
	logger := logging.WithComponentAndDestination("peer", c.destination.Address)
	logger.WithField("timeout", c.guard.Timeout().String()).Debug("Starting copy to peer switch")

	var config string
	err := c.guard.Run(ctx, "local eAPI", func(ctx context.Context) error {
		var err error
		config, err = c.fetcher.Fetch(ctx)
		return err
	})
	if err != nil {
		return err
	}

	modified, err := c.transformer.Transform(ctx, config, c.destination.Address)
	if err != nil {
		return fmt.Errorf("failed to modify startup-config: %w", err)
	}

	logger.Info("Opening peer eAPI connection...")
	var result []map[string]interface{}
	err = c.guard.Run(ctx, "destination eAPI", func(ctx context.Context) error {
		var err error
		result, err = c.pusher.Push(ctx, modified)
		return err
	})
	if err != nil {
		return err
	}

	logger.WithField("results", len(result)).Info("Startup-config copied to peer switch")
	return nil
}
