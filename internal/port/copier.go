// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"

	"onbox-config-copy/internal/types"
)

//go:generate mockgen -source=copier.go -destination=../mock/copier.go -package=mock

// ConfigCopier is the primary port for delivering a copy of the startup-config.
// Each destination kind (peer switch, server) is served by its own adapter.
type ConfigCopier interface {
	// Copy performs a single copy run. It returns types.ErrNotSupported for
	// destinations that have no implementation.
	Copy(ctx context.Context) error

	// Destination returns the destination this copier delivers to.
	Destination() types.Destination
}
