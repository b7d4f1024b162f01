// Package transform rewrites a startup-config so it can be installed on a backup switch.
package transform

import (
	"context"
	"fmt"
	"strings"

	"onbox-config-copy/internal/pkg/guard"
	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"
)

// StanzaDelimiter separates configuration stanzas.
const StanzaDelimiter = "!\n"

// Options controls the rewrite.
type Options struct {
	HostnameSuffix string // appended to the hostname, e.g. "-backup"
	EventHandler   string // name of the event handler that invokes this tool
	LegacyRejoin   bool   // concatenate kept stanzas without delimiters
	Strict         bool   // fail instead of warn when a token is absent
}

// Params are the resolved values a rewrite needs.
type Params struct {
	Hostname      string
	Address       types.InterfaceAddress
	DestinationIP string
}

// Transformer resolves the current hostname and management address and
// rewrites the configuration for the destination.
type Transformer struct {
	hostnames port.HostnameResolver
	addresses port.AddressResolver
	guard     *guard.Guard
	opts      Options
}

// NewTransformer creates a transformer.
func NewTransformer(hostnames port.HostnameResolver, addresses port.AddressResolver, g *guard.Guard, opts Options) *Transformer {
	return &Transformer{
		hostnames: hostnames,
		addresses: addresses,
		guard:     g,
		opts:      opts,
	}
}

// Transform resolves the rewrite parameters and applies them to config.
func (t *Transformer) Transform(ctx context.Context, config, destinationIP string) (string, error) {
	params := Params{DestinationIP: destinationIP}

	err := t.guard.Run(ctx, "local eAPI hostname", func(ctx context.Context) error {
		hostname, err := t.hostnames.Hostname(ctx)
		params.Hostname = hostname
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve hostname: %w", err)
	}

	err = t.guard.Run(ctx, "management address", func(ctx context.Context) error {
		addr, err := t.addresses.ManagementAddress(ctx)
		params.Address = addr
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve management address: %w", err)
	}

	return Apply(config, params, t.opts)
}

// Apply performs the hostname and address substitutions and drops the
// self-referential event handler and the trailing "end" stanza.
func Apply(config string, params Params, opts Options) (string, error) {
	logger := logging.WithComponentAndDestination("transform", params.DestinationIP)

	hostnameFrom := "hostname " + params.Hostname
	hostnameTo := hostnameFrom + opts.HostnameSuffix
	config, err := replaceToken(config, hostnameFrom, hostnameTo, opts.Strict)
	if err != nil {
		return "", err
	}
	logger.WithField("hostname", params.Hostname+opts.HostnameSuffix).Debug("Hostname rewritten")

	addressFrom := params.Address.String()
	addressTo := types.InterfaceAddress{Address: params.DestinationIP, MaskLen: params.Address.MaskLen}.String()
	config, err = replaceToken(config, addressFrom, addressTo, opts.Strict)
	if err != nil {
		return "", err
	}
	logger.WithField("address", addressTo).Debug("Management address rewritten")

	return FilterStanzas(config, opts.EventHandler, opts.LegacyRejoin), nil
}

// replaceToken replaces the first occurrence of from with to.
func replaceToken(config, from, to string, strict bool) (string, error) {
	if !strings.Contains(config, from) {
		if strict {
			return "", fmt.Errorf("%w: %q", types.ErrTokenNotFound, from)
		}
		logging.WithComponent("transform").WithField("token", from).Warn("Token not found in startup-config, leaving it unchanged")
		return config, nil
	}
	return strings.Replace(config, from, to, 1), nil
}

// FilterStanzas splits config into stanzas, drops stanzas whose first line
// starts with "event-handler <eventHandler>" and the bare "end" stanza, and
// rejoins the rest in order. Kept stanzas are each terminated by the
// delimiter. In legacy mode config is split on every "!\n" substring and the
// kept stanzas are concatenated without delimiters.
func FilterStanzas(config, eventHandler string, legacy bool) string {
	reserved := "event-handler " + eventHandler

	var stanzas []string
	if legacy {
		stanzas = strings.Split(config, StanzaDelimiter)
	} else {
		stanzas = splitStanzas(config)
	}

	var b strings.Builder
	for _, stanza := range stanzas {
		firstLine, _, _ := strings.Cut(stanza, "\n")
		if strings.HasPrefix(firstLine, reserved) {
			continue
		}
		if strings.TrimSpace(stanza) == "end" {
			continue
		}
		if legacy {
			b.WriteString(stanza)
			continue
		}
		if strings.TrimSpace(stanza) == "" {
			continue
		}
		b.WriteString(stanza)
		if !strings.HasSuffix(stanza, "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(StanzaDelimiter)
	}
	return b.String()
}

// splitStanzas splits config at lines consisting of a single "!".
// Indented "   !" lines stay inside their stanza.
func splitStanzas(config string) []string {
	var stanzas []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(config, "\n") {
		if line == StanzaDelimiter {
			stanzas = append(stanzas, current.String())
			current.Reset()
			continue
		}
		current.WriteString(line)
	}
	return append(stanzas, current.String())
}
