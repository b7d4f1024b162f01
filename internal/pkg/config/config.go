package config

import (
	"fmt"
	"os"
	"time"

	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/port"
	"onbox-config-copy/internal/types"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the event handler expects the configuration on flash.
const DefaultPath = "/mnt/flash/config-copy.yml"

// Environment variables that override the credentials from the file.
const (
	EnvUsername = "CONFIG_COPY_USERNAME"
	EnvPassword = "CONFIG_COPY_PASSWORD"
)

// Address sources for the management interface address.
const (
	AddressSourceEAPI   = "eapi"
	AddressSourceKernel = "kernel"
)

// LocalConfig represents the local eAPI endpoint
type LocalConfig struct {
	Socket string `yaml:"socket"`
}

// RemoteConfig represents the peer eAPI endpoint
type RemoteConfig struct {
	Scheme             string `yaml:"scheme"`
	Port               int    `yaml:"port,omitempty"`
	Path               string `yaml:"path"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// TransformConfig controls how the startup-config is rewritten for the peer
type TransformConfig struct {
	ManagementInterface string `yaml:"management_interface"`
	AddressSource       string `yaml:"address_source"`
	KernelInterface     string `yaml:"kernel_interface"`
	HostnameSuffix      string `yaml:"hostname_suffix"`
	EventHandler        string `yaml:"event_handler"`
	BannerLines         int    `yaml:"banner_lines"`
	LegacyRejoin        bool   `yaml:"legacy_rejoin"`
	Strict              bool   `yaml:"strict"`
}

// Config represents the main configuration structure
type Config struct {
	Logging     logging.LogConfig `yaml:"logging"`
	Credentials types.Credentials `yaml:"credentials"`
	Timeout     time.Duration     `yaml:"timeout"` // per device call
	Local       LocalConfig       `yaml:"local"`
	Remote      RemoteConfig      `yaml:"remote"`
	Transform   TransformConfig   `yaml:"transform"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: logging.LogConfig{
			Level:  "info",
			Format: "text",
			Syslog: logging.SyslogConfig{
				Enabled:  true,
				Tag:      "OnBoxConfigCopy",
				Facility: "local4",
				Prefix:   "ConfigCopy",
			},
		},
		Timeout: 5 * time.Second,
		Local: LocalConfig{
			Socket: "/var/run/command-api.sock",
		},
		Remote: RemoteConfig{
			Scheme:             "https",
			Path:               "/command-api",
			InsecureSkipVerify: true,
		},
		Transform: TransformConfig{
			ManagementInterface: "Management1",
			AddressSource:       AddressSourceEAPI,
			KernelInterface:     "ma1",
			HostnameSuffix:      "-backup",
			EventHandler:        "CONFIG-BACKUP",
			BannerLines:         6,
		},
	}
}

// Load loads configuration from a YAML file on top of the defaults
func Load(fileMgr port.FileManager, configPath string) (*Config, error) {
	data, err := fileMgr.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// LoadOrDefault loads configPath, falling back to defaults when the file is
// absent and the caller did not ask for it explicitly.
func LoadOrDefault(fileMgr port.FileManager, configPath string, explicit bool) (*Config, error) {
	if !explicit && !fileMgr.FileExists(configPath) {
		return Default(), nil
	}
	return Load(fileMgr, configPath)
}

// ApplyEnv overrides credentials from the environment.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvUsername); ok {
		c.Credentials.Username = v
	}
	if v, ok := os.LookupEnv(EnvPassword); ok {
		c.Credentials.Password = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Credentials.Username == "" {
		result = multierror.Append(result, fmt.Errorf("credentials: username is required (or set %s)", EnvUsername))
	}
	if c.Credentials.Password == "" {
		result = multierror.Append(result, fmt.Errorf("credentials: password is required (or set %s)", EnvPassword))
	}
	if c.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be positive"))
	}
	if c.Local.Socket == "" {
		result = multierror.Append(result, fmt.Errorf("local: socket is required"))
	}
	if err := validateRemoteConfig(c.Remote); err != nil {
		result = multierror.Append(result, err)
	}
	if err := validateTransformConfig(c.Transform); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func validateRemoteConfig(remote RemoteConfig) error {
	var result *multierror.Error
	if remote.Scheme != "https" && remote.Scheme != "http" {
		result = multierror.Append(result, fmt.Errorf("remote: scheme must be http or https, got %q", remote.Scheme))
	}
	if remote.Port < 0 || remote.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("remote: port %d out of range", remote.Port))
	}
	return result.ErrorOrNil()
}

func validateTransformConfig(transform TransformConfig) error {
	var result *multierror.Error
	switch transform.AddressSource {
	case AddressSourceEAPI:
		if transform.ManagementInterface == "" {
			result = multierror.Append(result, fmt.Errorf("transform: management_interface is required"))
		}
	case AddressSourceKernel:
		if transform.KernelInterface == "" {
			result = multierror.Append(result, fmt.Errorf("transform: kernel_interface is required for address_source %q", AddressSourceKernel))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("transform: address_source must be %q or %q, got %q", AddressSourceEAPI, AddressSourceKernel, transform.AddressSource))
	}
	if transform.EventHandler == "" {
		result = multierror.Append(result, fmt.Errorf("transform: event_handler is required"))
	}
	if transform.BannerLines < 0 {
		result = multierror.Append(result, fmt.Errorf("transform: banner_lines must not be negative"))
	}
	return result.ErrorOrNil()
}
