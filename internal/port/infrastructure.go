// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"

	"onbox-config-copy/internal/types"

	"github.com/vishvananda/netlink"
)

//go:generate mockgen -source=infrastructure.go -destination=../mock/infrastructure.go -package=mock

// CommandRunner is a port for eAPI command execution.
// This interface abstracts the JSON-RPC runCmds call against a local or remote device.
type CommandRunner interface {
	// RunCmds executes cmds as a single batch and returns one result object per command.
	// format is "json" or "text".
	RunCmds(ctx context.Context, version int, cmds []string, format string) ([]map[string]interface{}, error)
}

// HostnameResolver is a port for reading the configured hostname of a device.
type HostnameResolver interface {
	// Hostname returns the hostname of the device
	Hostname(ctx context.Context) (string, error)
}

// AddressResolver is a port for reading the management interface address of a device.
type AddressResolver interface {
	// ManagementAddress returns the primary IPv4 address and mask length of the management interface
	ManagementAddress(ctx context.Context) (types.InterfaceAddress, error)
}

// NetworkManager is a port for kernel network interface queries.
// This interface abstracts the netlink operations used to read interface addresses.
type NetworkManager interface {
	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// ListAddresses returns IPv4 addresses configured on the link
	ListAddresses(link netlink.Link) ([]netlink.Addr, error)
}

// FileManager is a port for file system operations.
// This interface abstracts file reads so configuration loading can run against any filesystem.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// FileExists checks if a file exists
	FileExists(filename string) bool
}
