// Package types defines common types used across the application.
package types

import (
	"fmt"
)

// Kind identifies where a configuration copy is delivered.
type Kind string

const (
	// KindSwitch installs the modified configuration on a peer switch through eAPI.
	KindSwitch Kind = "switch"
	// KindServer archives the unmodified configuration on an external SCP server.
	// This capability is not implemented.
	KindServer Kind = "server"
)

// ParseKind converts a command line value into a Kind. Only the exact
// lowercase names are accepted.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindSwitch:
		return KindSwitch, nil
	case KindServer:
		return KindServer, nil
	}
	return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidKind, value, KindSwitch, KindServer)
}

// Destination describes the target of a single invocation.
type Destination struct {
	Address string // IP of the peer switch or server
	Kind    Kind
}

func (d Destination) String() string {
	return fmt.Sprintf("%s:%s", d.Kind, d.Address)
}

// Credentials holds the login used against the remote eAPI endpoint.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InterfaceAddress is the primary IPv4 address of an interface.
type InterfaceAddress struct {
	Address string // dotted decimal, e.g. "10.0.0.5"
	MaskLen int    // prefix length, e.g. 24
}

// String renders the address the way it appears in the device configuration ("10.0.0.5/24").
func (a InterfaceAddress) String() string {
	return fmt.Sprintf("%s/%d", a.Address, a.MaskLen)
}
