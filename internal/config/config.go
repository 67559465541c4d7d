// Package config loads and persists the zb configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ConfigDir      = ".zb"
	ConfigFile     = "config"
	ConfigFileType = "yaml"
)

// SearchConfig tunes how the vault is indexed.
type SearchConfig struct {
	IgnoredFolders []string `yaml:"ignored_folders" mapstructure:"ignored_folders"`
}

// Config is the persisted user configuration.
type Config struct {
	VaultDir    string       `yaml:"vaultdir"    mapstructure:"vaultdir"`
	Editor      string       `yaml:"editor"      mapstructure:"editor"`
	EditorArgs  string       `yaml:"editorargs"  mapstructure:"editorargs"`
	DefaultSort string       `yaml:"defaultsort" mapstructure:"defaultsort"`
	Search      SearchConfig `yaml:"search"      mapstructure:"search"`

	path string
}

// Path returns the on-disk location of the config file.
func (c *Config) Path() string {
	return c.path
}

// StaticPath resolves the config file path under the home directory.
func StaticPath(home string) string {
	return filepath.Join(home, ConfigDir, ConfigFile+"."+ConfigFileType)
}

// Load reads the config file via viper and unmarshals it.
func Load(home string) (*Config, error) {
	viper.AddConfigPath(filepath.Join(home, ConfigDir))
	viper.SetConfigName(ConfigFile)
	viper.SetConfigType(ConfigFileType)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{path: StaticPath(home)}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Editor == "" {
		cfg.Editor = "vim"
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "modified"
	}

	return cfg, nil
}

// EnsureConfigExists writes a default config file if none is present.
func EnsureConfigExists(home string) error {
	path := StaticPath(home)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	cfg := &Config{
		VaultDir:    filepath.Join(home, "zettelkasten"),
		Editor:      "vim",
		DefaultSort: "modified",
		Search: SearchConfig{
			IgnoredFolders: []string{".obsidian", ".git"},
		},
		path: path,
	}
	return cfg.Save()
}

// Save writes the config back to its file, creating the directory as
// needed.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no associated path")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
