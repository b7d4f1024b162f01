// Package push installs a configuration on a peer switch through its command API.
package push

import (
	"context"
	"fmt"
	"strings"

	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/port"
)

// Pusher sends configuration lines to a remote device as one command batch.
type Pusher struct {
	runner      port.CommandRunner
	destination string
}

// NewPusher creates a pusher for the device reachable through runner.
func NewPusher(runner port.CommandRunner, destination string) *Pusher {
	return &Pusher{runner: runner, destination: destination}
}

// Push enters configuration mode on the remote device and replays config line by line.
// The per-command results are returned as received.
func (p *Pusher) Push(ctx context.Context, config string) ([]map[string]interface{}, error) {
	logger := logging.WithComponentAndDestination("push", p.destination)

	cmds := Commands(config)
	logger.WithField("commands", len(cmds)).Info("Pushing configuration to peer")

	result, err := p.runner.RunCmds(ctx, 1, cmds, "json")
	if err != nil {
		return nil, fmt.Errorf("failed to push configuration to %s: %w", p.destination, err)
	}
	return result, nil
}

// Commands builds the batch for config: "enable", "configure", then every
// line of config in order. The empty element after a trailing newline is not a line.
func Commands(config string) []string {
	cmds := []string{"enable", "configure"}
	if config == "" {
		return cmds
	}
	return append(cmds, strings.Split(strings.TrimSuffix(config, "\n"), "\n")...)
}
