package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/encoding/json"
)

// Config is the top-level service configuration loaded from JSON.
type Config struct {
	Upstream  UpstreamConfig  `json:"upstream"`
	Blacklist BlacklistConfig `json:"blacklist"`
}

// UpstreamConfig controls how MCP clients connect to the service.
type UpstreamConfig struct {
	Transport string     `json:"transport"` // "stdio" or "http"
	HTTP      HTTPConfig `json:"http"`
}

// HTTPConfig holds HTTP listener settings.
type HTTPConfig struct {
	Addr string `json:"addr"` // e.g. ":8080"
	Path string `json:"path"` // e.g. "/mcp"
}

// BlacklistConfig points at the JSON array of phishing domains.
type BlacklistConfig struct {
	Path string `json:"path"`
	// Required makes a failed startup load fatal. Otherwise the service
	// starts with nothing installed and every check comes back clean until
	// a reload succeeds.
	Required *bool `json:"required,omitempty"`
}

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	DefaultHTTPAddr      = ":8080"
	DefaultHTTPPath      = "/mcp"
	DefaultBlacklistPath = "domains.json"
)

// Load reads and parses a JSON config file, applies defaults, and validates.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Upstream.Transport == "" {
		cfg.Upstream.Transport = TransportStdio
	}
	if cfg.Upstream.HTTP.Addr == "" {
		cfg.Upstream.HTTP.Addr = DefaultHTTPAddr
	}
	if cfg.Upstream.HTTP.Path == "" {
		cfg.Upstream.HTTP.Path = DefaultHTTPPath
	}

	if cfg.Blacklist.Path == "" {
		cfg.Blacklist.Path = DefaultBlacklistPath
	}
	if cfg.Blacklist.Required == nil {
		cfg.Blacklist.Required = boolPtr(false)
	}
}

func validate(cfg Config) error {
	if cfg.Upstream.Transport != TransportStdio && cfg.Upstream.Transport != TransportHTTP {
		return fmt.Errorf("upstream transport must be %q or %q, got %q",
			TransportStdio, TransportHTTP, cfg.Upstream.Transport)
	}

	if cfg.Upstream.Transport == TransportHTTP && !strings.HasPrefix(cfg.Upstream.HTTP.Path, "/") {
		return fmt.Errorf("upstream http path must start with \"/\", got %q", cfg.Upstream.HTTP.Path)
	}

	if strings.TrimSpace(cfg.Blacklist.Path) == "" {
		return fmt.Errorf("blacklist path must not be blank")
	}

	return nil
}

// BlacklistRequired reports whether a failed startup load should abort.
func (c Config) BlacklistRequired() bool {
	return deref(c.Blacklist.Required)
}

func boolPtr(b bool) *bool { return &b }

func deref(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
