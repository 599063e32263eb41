// Package config handles the XDG configuration directory, config.yaml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "curate"

	// ConfigFile is the optional YAML settings filename.
	ConfigFile = "config.yaml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Environment variables that override config.yaml.
const (
	EnvBackendURL  = "CURATE_BACKEND_URL"
	EnvToken       = "CURATE_TOKEN"
	EnvAuthMode    = "CURATE_AUTH_MODE"
	EnvAudience    = "CURATE_AUDIENCE"
	EnvCredentials = "CURATE_CREDENTIALS"
)

// Auth modes.
const (
	AuthModeOAuth          = "oauth"
	AuthModeServiceAccount = "service_account"
	AuthModeNone           = "none"
)

// ErrNoBackendURL is returned when no backend base URL is configured.
var ErrNoBackendURL = errors.New("backend URL not configured (set " + EnvBackendURL + " or backend_url in " + ConfigFile + ")")

// AuthConfig selects how bearer tokens are obtained.
type AuthConfig struct {
	// Mode is one of oauth (default), service_account or none.
	Mode string `yaml:"mode"`

	// Audience is the ID token audience for service_account mode.
	Audience string `yaml:"audience"`

	// Credentials is a service account key file for service_account mode.
	Credentials string `yaml:"credentials"`
}

// fileConfig mirrors config.yaml.
type fileConfig struct {
	BackendURL string     `yaml:"backend_url"`
	Auth       AuthConfig `yaml:"auth"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// BackendURL is the normalized REST base URL, without trailing slash.
	BackendURL string

	// Token is a fixed bearer token that bypasses the auth mode.
	Token string

	// Auth selects the token provider.
	Auth AuthConfig
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/curate or $HOME/.config/curate.
// Settings are layered: config.yaml, then environment variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, Auth: AuthConfig{Mode: AuthModeOAuth}}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if fc.BackendURL != "" {
		if err := c.SetBackendURL(fc.BackendURL); err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}
	if fc.Auth.Mode != "" {
		c.Auth.Mode = fc.Auth.Mode
	}
	c.Auth.Audience = fc.Auth.Audience
	c.Auth.Credentials = fc.Auth.Credentials
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvBackendURL); v != "" {
		if err := c.SetBackendURL(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvBackendURL, err)
		}
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvAuthMode); v != "" {
		c.Auth.Mode = v
	}
	if v := os.Getenv(EnvAudience); v != "" {
		c.Auth.Audience = v
	}
	if v := os.Getenv(EnvCredentials); v != "" {
		c.Auth.Credentials = v
	}
	switch c.Auth.Mode {
	case AuthModeOAuth, AuthModeServiceAccount, AuthModeNone:
		return nil
	default:
		return fmt.Errorf("unknown auth mode: %s", c.Auth.Mode)
	}
}

// SetBackendURL normalizes and stores the backend base URL.
func (c *Config) SetBackendURL(raw string) error {
	u, err := NormalizeBaseURL(raw)
	if err != nil {
		return err
	}
	c.BackendURL = u
	return nil
}

// RequireBackend returns the backend URL or ErrNoBackendURL.
func (c *Config) RequireBackend() (string, error) {
	if c.BackendURL == "" {
		return "", ErrNoBackendURL
	}
	return c.BackendURL, nil
}

// NormalizeBaseURL checks raw is an absolute http(s) URL and strips a
// trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid backend URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("backend URL must be absolute http(s): %q", raw)
	}
	return strings.TrimSuffix(raw, "/"), nil
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
