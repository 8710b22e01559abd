// Package config loads dashboard settings from an optional YAML file and
// the environment. Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when no path is given and DASHBOARD_CONFIG is unset.
const DefaultPath = "./dashboard.yaml"

// Config is the root dashboard configuration.
type Config struct {
	Server        ServerConfig `yaml:"server"`
	Client        ClientConfig `yaml:"client"`
	Gist          GistConfig   `yaml:"gist"`
	MCP           MCPConfig    `yaml:"mcp"`
	Log           LogConfig    `yaml:"log"`
	LanguagesFile string       `yaml:"languages_file" env:"DASHBOARD_LANGUAGES_FILE"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"DASHBOARD_ADDR"             env-default:":9999"`
	APIPrefix       string        `yaml:"api_prefix"       env:"DASHBOARD_API_PREFIX"       env-default:"/api"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"DASHBOARD_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"DASHBOARD_WRITE_TIMEOUT"    env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"DASHBOARD_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// ClientConfig holds settings for the client side of the protocol, used
// by the dashboard page and the CLI. An empty ServerURL means the
// dashboard's own API when serving, else the protocol default.
type ClientConfig struct {
	ServerURL string        `yaml:"server_url" env:"DASHBOARD_SERVER_URL"`
	Timeout   time.Duration `yaml:"timeout"    env:"DASHBOARD_CLIENT_TIMEOUT"`
}

// GistConfig holds settings for gist retrieval.
type GistConfig struct {
	BaseURL string        `yaml:"base_url" env:"DASHBOARD_GIST_BASE_URL" env-default:"https://gist.githubusercontent.com/"`
	Timeout time.Duration `yaml:"timeout"  env:"DASHBOARD_GIST_TIMEOUT"  env-default:"10s"`
}

// MCPConfig holds settings for the MCP tool server. An empty Addr
// disables the HTTP listener.
type MCPConfig struct {
	Addr string `yaml:"addr" env:"DASHBOARD_MCP_ADDR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from path and the environment. An empty path
// falls back to DASHBOARD_CONFIG, then DefaultPath. A missing file is an
// error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("DASHBOARD_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Validate checks field values that cleanenv cannot express.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &ValidationError{Field: "server.addr", Reason: "must not be empty"}
	}
	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return &ValidationError{Field: "server.api_prefix", Reason: "must start with /"}
	}
	if c.Client.ServerURL != "" {
		if err := validateURL(c.Client.ServerURL); err != nil {
			return &ValidationError{Field: "client.server_url", Reason: err.Error()}
		}
	}
	if err := validateURL(c.Gist.BaseURL); err != nil {
		return &ValidationError{Field: "gist.base_url", Reason: err.Error()}
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return &ValidationError{Field: "log.format", Reason: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
