// Package startup retrieves the startup-config of the local switch.
package startup

import (
	"context"
	"fmt"
	"strings"

	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/port"
)

// Fetcher reads the startup-config as text through the local command API.
type Fetcher struct {
	runner      port.CommandRunner
	bannerLines int
}

// NewFetcher creates a fetcher that drops the first bannerLines lines of the output.
func NewFetcher(runner port.CommandRunner, bannerLines int) *Fetcher {
	return &Fetcher{runner: runner, bannerLines: bannerLines}
}

// Fetch returns the startup-config without the banner emitted by the device.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	logger := logging.WithComponent("startup")
	logger.Info("Copying startup-config...")

	result, err := f.runner.RunCmds(ctx, 1, []string{"enable", "show startup-config"}, "text")
	if err != nil {
		return "", fmt.Errorf("failed to read startup-config: %w", err)
	}
	if len(result) < 2 {
		return "", fmt.Errorf("failed to read startup-config: expected 2 results, got %d", len(result))
	}

	output, ok := result[1]["output"].(string)
	if !ok {
		return "", fmt.Errorf("failed to read startup-config: output is not text")
	}

	config := StripBanner(output, f.bannerLines)
	logger.WithField("bytes", len(config)).Debug("Startup-config retrieved")
	return config, nil
}

// StripBanner removes the first n lines of text. Text with n lines or fewer yields "".
func StripBanner(text string, n int) string {
	if n <= 0 {
		return text
	}
	lines := strings.SplitAfter(text, "\n")
	if len(lines) <= n {
		return ""
	}
	return strings.Join(lines[n:], "")
}
