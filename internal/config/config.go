// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/pricing"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
)

// Environment variables read by ApplyEnv
const (
	EnvConfig         = "MFF_CONFIG"
	EnvLogLevel       = "MFF_LOG_LEVEL"
	EnvLogFormat      = "MFF_LOG_FORMAT"
	EnvListenAddr     = "MFF_LISTEN_ADDR"
	EnvAllowedOrigins = "MFF_ALLOWED_ORIGINS"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Pricing holds the price tables. A file that sets it replaces the
	// default tables as a whole.
	Pricing *pricing.Tables `json:"pricing" yaml:"pricing"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// ListenAddr is the address the API listens on
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	// AllowedOrigins are the CORS origins allowed to call the API
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// ShowDetails shows the line items under each total
	ShowDetails bool `json:"show_details" yaml:"show_details"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: pricing.Default(),
		Server: ServerConfig{
			ListenAddr:             ":8282",
			AllowedOrigins:         []string{"*"},
			ShutdownTimeoutSeconds: 10,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the per-user configuration file path
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".mff-cost", "config.json")
}

// Load loads configuration from a JSON or YAML file, chosen by extension.
// A missing file yields the defaults; other extensions are NOT_SUPPORTED.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read "+path, err)
	}

	yamlFile, err := isYAML(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	config.Pricing = nil

	if yamlFile {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("failed to parse "+path, err)
	}

	if config.Pricing == nil {
		config.Pricing = pricing.Default()
	}
	if err := config.Pricing.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadEnv loads .env files into the process environment. Files that do not
// exist are skipped; variables already set are kept.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return errors.Config("failed to stat "+path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Config("failed to load "+path, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from MFF_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		c.Server.ListenAddr = v
	}
	if v := os.Getenv(EnvAllowedOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	yamlFile, err := isYAML(path)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create "+dir, err)
	}

	var data []byte
	if yamlFile {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Config("failed to encode configuration", err)
	}

	return os.WriteFile(path, data, 0644)
}

// isYAML picks the file format from the extension. Paths without an
// extension are JSON.
func isYAML(path string) (bool, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return true, nil
	case ".json", "":
		return false, nil
	default:
		return false, errors.NotSupported(ext + " configuration files")
	}
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
