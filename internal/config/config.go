// Package config reads and writes the pulse configuration file and
// resolves XDG paths.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the top-level pulse configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	AI      AIConfig      `toml:"ai"`
	Storage StorageConfig `toml:"storage"`
	Web     WebConfig     `toml:"web"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

type AIConfig struct {
	Provider string `toml:"provider"` // openai, etc.
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

// StorageConfig controls at-rest encryption of the data blob.
type StorageConfig struct {
	// Encrypt enables age passphrase encryption for stored data.
	Encrypt bool `toml:"encrypt"`
}

type WebConfig struct {
	Port int `toml:"port"`
}

// ResolveAPIKey returns the AI API key, preferring environment variables
// over the config file.
func (c *Config) ResolveAPIKey() string {
	if v := os.Getenv("PULSE_OPENAI_API_KEY"); v != "" {
		return v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		return v
	}
	return c.AI.APIKey
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir   string
	DataDir     string
	StateDir    string
	ConfigFile  string
	DBFile      string
	SessionFile string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	pulseConfig := filepath.Join(configDir, "pulse")
	pulseData := filepath.Join(dataDir, "pulse")
	pulseState := filepath.Join(stateDir, "pulse")

	return Paths{
		ConfigDir:   pulseConfig,
		DataDir:     pulseData,
		StateDir:    pulseState,
		ConfigFile:  filepath.Join(pulseConfig, "config.toml"),
		DBFile:      filepath.Join(pulseData, "pulse.db"),
		SessionFile: filepath.Join(pulseState, "session"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8421
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func defaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider: "openai",
			Model:    "gpt-3.5-turbo",
		},
		Web: WebConfig{
			Port: 8421,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
