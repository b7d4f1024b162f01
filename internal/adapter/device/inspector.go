// Package device resolves facts about a switch through its command API.
package device

import (
	"context"
	"fmt"

	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"

	"github.com/mitchellh/mapstructure"
)

// Inspector is an adapter that implements the HostnameResolver and AddressResolver
// ports by querying a device through a CommandRunner.
type Inspector struct {
	runner              port.CommandRunner
	managementInterface string
}

// Ensure Inspector implements the resolver ports
var (
	_ port.HostnameResolver = (*Inspector)(nil)
	_ port.AddressResolver  = (*Inspector)(nil)
)

// showHostname mirrors the JSON output of "show hostname".
type showHostname struct {
	Hostname string `mapstructure:"hostname"`
	FQDN     string `mapstructure:"fqdn"`
}

// showInterfaces mirrors the parts of "show interfaces <name>" used here.
type showInterfaces struct {
	Interfaces map[string]struct {
		Name             string `mapstructure:"name"`
		InterfaceAddress []struct {
			PrimaryIP struct {
				Address string `mapstructure:"address"`
				MaskLen int    `mapstructure:"maskLen"`
			} `mapstructure:"primaryIp"`
		} `mapstructure:"interfaceAddress"`
	} `mapstructure:"interfaces"`
}

// NewInspector creates an inspector that reads the address of managementInterface (e.g. "Management1").
func NewInspector(runner port.CommandRunner, managementInterface string) *Inspector {
	return &Inspector{
		runner:              runner,
		managementInterface: managementInterface,
	}
}

// Hostname returns the configured hostname of the device.
func (i *Inspector) Hostname(ctx context.Context) (string, error) {
	var out showHostname
	if err := i.runOne(ctx, "show hostname", &out); err != nil {
		return "", err
	}
	if out.Hostname == "" {
		return "", fmt.Errorf("show hostname returned an empty hostname")
	}
	return out.Hostname, nil
}

// ManagementAddress returns the primary address and mask length of the management interface.
func (i *Inspector) ManagementAddress(ctx context.Context) (types.InterfaceAddress, error) {
	cmd := "show interfaces " + i.managementInterface

	var out showInterfaces
	if err := i.runOne(ctx, cmd, &out); err != nil {
		return types.InterfaceAddress{}, err
	}

	iface, ok := out.Interfaces[i.managementInterface]
	if !ok {
		return types.InterfaceAddress{}, fmt.Errorf("%s: interface %s missing from output", cmd, i.managementInterface)
	}
	if len(iface.InterfaceAddress) == 0 || iface.InterfaceAddress[0].PrimaryIP.Address == "" {
		return types.InterfaceAddress{}, fmt.Errorf("%s: no primary address configured", cmd)
	}

	primary := iface.InterfaceAddress[0].PrimaryIP
	return types.InterfaceAddress{Address: primary.Address, MaskLen: primary.MaskLen}, nil
}

// runOne executes a single JSON command and decodes its result into out.
func (i *Inspector) runOne(ctx context.Context, cmd string, out interface{}) error {
	result, err := i.runner.RunCmds(ctx, 1, []string{cmd}, "json")
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd, err)
	}
	if len(result) != 1 {
		return fmt.Errorf("%s: expected 1 result, got %d", cmd, len(result))
	}
	if err := mapstructure.Decode(result[0], out); err != nil {
		return fmt.Errorf("%s: failed to decode output: %w", cmd, err)
	}
	return nil
}
