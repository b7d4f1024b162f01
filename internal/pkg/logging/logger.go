package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string       `yaml:"level"`
	Format string       `yaml:"format"` // json, text, simple, or compact
	Syslog SyslogConfig `yaml:"syslog"`
}

// CompactFormatter implements a custom formatter for compact logging
type CompactFormatter struct {
	ShowTime bool
}

// Format renders a single log entry
func (f *CompactFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	if f.ShowTime {
		b.WriteString(fmt.Sprintf("[%s]", entry.Time.Format("15:04:05")))
	}

	level := strings.ToUpper(entry.Level.String())
	b.WriteString(fmt.Sprintf("[%s]", level))

	// Component and destination go in brackets, everything else trails the message
	if component, ok := entry.Data["component"]; ok {
		b.WriteString(fmt.Sprintf("[%s]", component))
	}
	if destination, ok := entry.Data["destination"]; ok {
		b.WriteString(fmt.Sprintf("[%s]", destination))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)
	b.WriteString(formatFields(entry.Data, "component", "destination"))
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// formatFields renders entry fields as " (k=v, k=v)" in sorted key order, skipping the excluded keys.
func formatFields(data logrus.Fields, exclude ...string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		skip := false
		for _, e := range exclude {
			if k == e {
				skip = true
				break
			}
		}
		if !skip {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, data[key]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// InitLogger initializes the global logger with the provided configuration
func InitLogger(config LogConfig) {
	initLogger(config, os.Stdout, dialSyslog)
}

func initLogger(config LogConfig, out io.Writer, dial syslogDialer) {
	Logger = logrus.New()
	Logger.SetOutput(out)

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		// Default to info if invalid level
		level = logrus.InfoLevel
		Logger.Warnf("Invalid log level '%s', defaulting to 'info'", config.Level)
	}
	Logger.SetLevel(level)

	switch strings.ToLower(config.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "simple":
		Logger.SetFormatter(&CompactFormatter{ShowTime: false})
	case "compact":
		Logger.SetFormatter(&CompactFormatter{ShowTime: true})
	case "text", "":
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Logger.Warnf("Invalid log format '%s', defaulting to 'text'", config.Format)
	}

	if config.Syslog.Enabled {
		hook, err := NewSyslogHook(config.Syslog, dial)
		if err != nil {
			// A missing syslog daemon does not stop the copy
			Logger.WithError(err).Warn("Syslog unavailable, logging to stdout only")
		} else {
			Logger.AddHook(hook)
		}
	}

	Logger.Debugf("Logger initialized with level: %s, format: %s", level.String(), config.Format)
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger(LogConfig{
			Level:  "info",
			Format: "text",
		})
	}
	return Logger
}

// Helper functions for common logging patterns
func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

func WithDestination(destination string) *logrus.Entry {
	return GetLogger().WithField("destination", destination)
}

func WithComponentAndDestination(component, destination string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"component":   component,
		"destination": destination,
	})
}

func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}
