package cmd

import (
	"context"
	"errors"
	"fmt"

	"onbox-config-copy/internal/adapter/device"
	"onbox-config-copy/internal/adapter/infrastructure/eapi"
	"onbox-config-copy/internal/adapter/infrastructure/network"
	"onbox-config-copy/internal/adapter/kernel"
	"onbox-config-copy/internal/adapter/peer"
	"onbox-config-copy/internal/adapter/server"
	"onbox-config-copy/internal/pkg/config"
	"onbox-config-copy/internal/pkg/guard"
	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/pkg/push"
	"onbox-config-copy/internal/pkg/startup"
	"onbox-config-copy/internal/pkg/transform"
	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"
)

type copyOptions struct {
	destination    string
	kind           string
	configPath     string
	explicitConfig bool
}

// createConfigCopier creates the copier for the destination kind
func createConfigCopier(destination types.Destination, cfg *config.Config) (port.ConfigCopier, error) {
	logger := logging.WithDestination(destination.Address)

	switch destination.Kind {
	case types.KindServer:
		return server.NewCopier(destination), nil

	case types.KindSwitch:
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation error: %w", err)
		}

		g := guard.New(cfg.Timeout)

		// Hostname and management address are read from the local switch, whose
		// values are the ones present in the fetched startup-config
		local := eapi.NewUnixClient(cfg.Local.Socket)
		inspector := device.NewInspector(local, cfg.Transform.ManagementInterface)

		var addresses port.AddressResolver = inspector
		if cfg.Transform.AddressSource == config.AddressSourceKernel {
			addresses = kernel.NewResolver(cfg.Transform.KernelInterface, network.NewManagerAdapter())
		}

		remote, err := eapi.NewRemoteClient(destination.Address, cfg.Credentials, eapi.RemoteOptions{
			Scheme:             cfg.Remote.Scheme,
			Port:               cfg.Remote.Port,
			Path:               cfg.Remote.Path,
			InsecureSkipVerify: cfg.Remote.InsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create peer eAPI client: %w", err)
		}
		logger.WithField("endpoint", remote.Endpoint()).Debug("Created peer eAPI client")

		transformer := transform.NewTransformer(inspector, addresses, g, transform.Options{
			HostnameSuffix: cfg.Transform.HostnameSuffix,
			EventHandler:   cfg.Transform.EventHandler,
			LegacyRejoin:   cfg.Transform.LegacyRejoin,
			Strict:         cfg.Transform.Strict,
		})

		copier, err := peer.NewCopier(
			destination,
			startup.NewFetcher(local, cfg.Transform.BannerLines),
			transformer,
			push.NewPusher(remote, destination.Address),
			g,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create peer copier: %w", err)
		}
		return copier, nil
	}

	return nil, fmt.Errorf("%w: %q", types.ErrInvalidKind, destination.Kind)
}

// runCopy performs one invocation: load configuration, dispatch on the
// destination kind and run the copier.
func runCopy(ctx context.Context, opts copyOptions, fileMgr port.FileManager) error {
	cfg, err := config.LoadOrDefault(fileMgr, opts.configPath, opts.explicitConfig)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	cfg.ApplyEnv()

	logging.InitLogger(cfg.Logging)
	logger := logging.GetLogger()

	kind, err := types.ParseKind(opts.kind)
	if err != nil {
		logger.WithField("type", opts.kind).Error("Invalid type, must be switch or server")
		return err
	}

	destination := types.Destination{Address: opts.destination, Kind: kind}
	logger.WithField("destination", destination.String()).Info("Starting config copy")

	copier, err := createConfigCopier(destination, cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to create config copier")
		return err
	}

	return executeCopy(ctx, copier)
}

// executeCopy runs copier once and reports the outcome.
func executeCopy(ctx context.Context, copier port.ConfigCopier) error {
	logger := logging.WithDestination(copier.Destination().String())

	if err := copier.Copy(ctx); err != nil {
		if errors.Is(err, types.ErrNotSupported) {
			logger.Warn("Destination type is not supported yet")
		} else {
			logger.WithError(err).Error("Config copy failed")
		}
		return err
	}

	logger.Info("Config copy complete")
	return nil
}
