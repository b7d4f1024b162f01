// Package server archives the startup-config on an external server.
package server

import (
	"context"
	"fmt"

	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"
)

// Copier implements the ConfigCopier port for server destinations.
// Copying over SCP is not implemented; Copy always reports types.ErrNotSupported.
type Copier struct {
	destination types.Destination
}

// Ensure Copier implements the ConfigCopier port
var _ port.ConfigCopier = (*Copier)(nil)

// NewCopier creates a server copier.
func NewCopier(destination types.Destination) *Copier {
	return &Copier{destination: destination}
}

// Destination returns the server this copier would deliver to.
func (c *Copier) Destination() types.Destination {
	return c.destination
}

// Copy returns types.ErrNotSupported without contacting any device.
func (c *Copier) Copy(ctx context.Context) error {
	logging.WithComponentAndDestination("server", c.destination.Address).
		Error("Copy to server is not supported")
	return fmt.Errorf("copy to %s: %w", c.destination, types.ErrNotSupported)
}
