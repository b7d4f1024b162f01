package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"onbox-config-copy/internal/adapter/infrastructure/file"
	"onbox-config-copy/internal/pkg/config"
	"onbox-config-copy/internal/pkg/version"

	"github.com/spf13/cobra"
)

var (
	destinationFlag string
	typeFlag        string
	configFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "onbox-config-copy",
	Short: "onbox-config-copy archives the startup-config each time it is saved",
	Long: `onbox-config-copy is meant to run from an event handler that triggers on
startup-config changes. With --type switch it installs the configuration on a
spare switch, renaming the hostname and moving the management IP to the
destination address.

  event-handler CONFIG-BACKUP
     trigger on-startup-config
     action bash /mnt/flash/onbox-config-copy -d 10.0.0.9 -t switch
     delay 5
     timeout 30`,
	Version:      version.GetGitInfo().String(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return runCopy(ctx, copyOptions{
			destination:    destinationFlag,
			kind:           typeFlag,
			configPath:     configFlag,
			explicitConfig: cmd.Flags().Changed("config"),
		}, file.NewManagerAdapter())
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.Flags().StringVarP(&destinationFlag, "destination", "d", "", "IP of location to copy to")
	rootCmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Destination type: switch or server")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", config.DefaultPath, "Path to config file (YAML)")
	for _, name := range []string{"destination", "type"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err) // This should never happen during initialization
		}
	}
}
