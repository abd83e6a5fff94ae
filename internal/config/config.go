// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default locations for the aggregation pipeline. Both are relative to
// the working directory, matching how the tool is run from a price
// list folder.
const (
	DefaultSourceDir  = "pricelists"
	DefaultOutputFile = "aggregated_pricelist.xlsx"
)

// Config holds the application configuration.
type Config struct {
	SourceDir  string `mapstructure:"source_dir"`
	OutputFile string `mapstructure:"output_file"`
	Dellin     struct {
		Appkey  string `mapstructure:"appkey"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"dellin"`
	Output struct {
		Format string `mapstructure:"format"`
		Color  bool   `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.pricekit/config.yaml and
// environment variables (PRICEKIT_ prefix).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	// Defaults
	viper.SetDefault("source_dir", DefaultSourceDir)
	viper.SetDefault("output_file", DefaultOutputFile)
	viper.SetDefault("dellin.base_url", "https://api.dellin.ru/v2/")
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.format", "text")

	// Environment variable overrides
	viper.SetEnvPrefix("PRICEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetDellinAppkey retrieves the Dellin application key, checking the
// environment first and falling back to the config file.
func GetDellinAppkey() (string, error) {
	if key := os.Getenv("PRICEKIT_DELLIN_APPKEY"); key != "" {
		return key, nil
	}
	cfg, err := Load()
	if err == nil && cfg.Dellin.Appkey != "" {
		return cfg.Dellin.Appkey, nil
	}
	return "", fmt.Errorf("PRICEKIT_DELLIN_APPKEY not found — set it via environment variable or in ~/.pricekit/config.yaml")
}

// Set sets a config value and saves to disk.
func Set(key, value string) error {
	viper.Set(key, value)
	return SaveConfig()
}

// Get retrieves a config value.
func Get(key string) string {
	return viper.GetString(key)
}

// ResetConfig resets all config to defaults.
func ResetConfig() error {
	path := ConfigPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	viper.Set("source_dir", DefaultSourceDir)
	viper.Set("output_file", DefaultOutputFile)
	viper.Set("output.color", true)
	viper.Set("output.format", "text")
	return nil
}

// SaveConfig writes the current config to ~/.pricekit/config.yaml.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}

	// Set secure permissions: the file may hold the Dellin appkey
	os.Chmod(path, 0600)
	return nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ShowConfig returns a formatted string of the current configuration.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))

	sb.WriteString("Aggregation\n")
	sb.WriteString(fmt.Sprintf("  source_dir:  %s\n", viper.GetString("source_dir")))
	sb.WriteString(fmt.Sprintf("  output_file: %s\n", viper.GetString("output_file")))
	sb.WriteString("\n")

	if k := viper.GetString("dellin.appkey"); k != "" {
		sb.WriteString("Dellin\n")
		sb.WriteString(fmt.Sprintf("  appkey:   %s****\n", k[:min(8, len(k))]))
		sb.WriteString(fmt.Sprintf("  base_url: %s\n", viper.GetString("dellin.base_url")))
		sb.WriteString("\n")
	}

	return sb.String()
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pricekit"
	}
	return filepath.Join(home, ".pricekit")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
