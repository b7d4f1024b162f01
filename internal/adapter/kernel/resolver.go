// Package kernel resolves the management address from the Linux interface that
// backs the management port (Management1 is exposed to the kernel as ma1).
package kernel

import (
	"context"
	"fmt"

	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"
)

// Resolver is an adapter that implements the AddressResolver port via netlink.
type Resolver struct {
	interfaceName string
	networkMgr    port.NetworkManager
}

// Ensure Resolver implements the AddressResolver port
var _ port.AddressResolver = (*Resolver)(nil)

// NewResolver creates a resolver for the kernel interface interfaceName.
func NewResolver(interfaceName string, networkMgr port.NetworkManager) *Resolver {
	return &Resolver{
		interfaceName: interfaceName,
		networkMgr:    networkMgr,
	}
}

// ManagementAddress returns the first IPv4 address of the interface.
func (r *Resolver) ManagementAddress(ctx context.Context) (types.InterfaceAddress, error) {
	logger := logging.WithComponent("kernel").WithField("interface", r.interfaceName)

	link, err := r.networkMgr.GetLinkByName(r.interfaceName)
	if err != nil {
		return types.InterfaceAddress{}, fmt.Errorf("failed to get management interface: %w", err)
	}

	addrs, err := r.networkMgr.ListAddresses(link)
	if err != nil {
		return types.InterfaceAddress{}, fmt.Errorf("failed to list management addresses: %w", err)
	}

	for _, addr := range addrs {
		if addr.IPNet == nil || addr.IPNet.IP.To4() == nil {
			continue
		}
		ones, _ := addr.IPNet.Mask.Size()
		resolved := types.InterfaceAddress{Address: addr.IPNet.IP.String(), MaskLen: ones}
		logger.WithField("address", resolved.String()).Debug("Resolved management address from kernel")
		return resolved, nil
	}

	return types.InterfaceAddress{}, fmt.Errorf("no IPv4 address configured on %s", r.interfaceName)
}
