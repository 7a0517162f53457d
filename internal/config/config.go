// Package config loads server configuration from an optional YAML file and
// the environment. The three secrets (AUTH_TOKEN, MY_NUMBER, SERPAPI_KEY) are
// required; the process must not start without them.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the non-secret settings, e.g. EVENTPLANNER_SERVER_PORT.
const envPrefix = "EVENTPLANNER_"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Auth    AuthConfig    `koanf:"auth"`
	SerpAPI SerpAPIConfig `koanf:"serpapi"`
	Catalog CatalogConfig `koanf:"catalog"`
	Storage StorageConfig `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type AuthConfig struct {
	// Token is the bearer secret every tool call must present.
	Token string `koanf:"token"`

	// MyNumber is the caller identity string returned by the validate tool.
	MyNumber string `koanf:"my_number"`
}

type SerpAPIConfig struct {
	APIKey string `koanf:"api_key"`
}

type CatalogConfig struct {
	EventsPath    string `koanf:"events"`
	LocationsPath string `koanf:"locations"`
}

type StorageConfig struct {
	// Path is the sqlite database file for the tool-call log.
	Path string `koanf:"path"`
}

// Load reads configuration in precedence order: defaults, then the YAML file
// at configPath (skipped if absent), then environment variables. Secrets come
// from their conventional unprefixed names; everything else uses the
// EVENTPLANNER_ prefix.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider("", ".", mapEnvVar), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8086)
	}
	if !k.Exists("catalog.events") {
		k.Set("catalog.events", "data/indian_events.json")
	}
	if !k.Exists("catalog.locations") {
		k.Set("catalog.locations", "data/indian_locations.json")
	}
	if !k.Exists("storage.path") {
		k.Set("storage.path", "data/eventplanner.db")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mapEnvVar translates environment variable names into config keys. Variables
// that are neither a known secret nor EVENTPLANNER_-prefixed are skipped.
func mapEnvVar(s string) string {
	switch s {
	case "AUTH_TOKEN":
		return "auth.token"
	case "MY_NUMBER":
		return "auth.my_number"
	case "SERPAPI_KEY":
		return "serpapi.api_key"
	}
	if strings.HasPrefix(s, envPrefix) {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", -1)
	}
	return ""
}

// Validate reports every missing required secret at once so a misconfigured
// deployment fails with one actionable message.
func (c *Config) Validate() error {
	var missing []string
	if c.Auth.Token == "" {
		missing = append(missing, "AUTH_TOKEN")
	}
	if c.Auth.MyNumber == "" {
		missing = append(missing, "MY_NUMBER")
	}
	if c.SerpAPI.APIKey == "" {
		missing = append(missing, "SERPAPI_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
