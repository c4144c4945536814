// Package config loads dualtrack settings from config.yaml and DUALTRACK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "DUALTRACK"
	fileName  = "config" // .yaml is implicit
)

type Config struct {
	DataDir     string
	Backend     string
	LogLevel    string
	LogFile     string
	SeriesDays  int
	ClickWindow time.Duration
	ServeAddr   string
}

// fileConfig is the on-disk shape written by Write.
type fileConfig struct {
	DataDir     string `yaml:"data_dir"`
	Backend     string `yaml:"backend"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	SeriesDays  int    `yaml:"series_days"`
	ClickWindow string `yaml:"click_window"`
	ServeAddr   string `yaml:"serve_addr"`
}

// Dir is where config.yaml lives by default.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dualtrack"), nil
}

// Defaults returns the built-in settings. The data directory falls back to
// the working directory when no user config dir exists.
func Defaults() Config {
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	return Config{
		DataDir:     dir,
		Backend:     "sqlite",
		LogLevel:    "info",
		LogFile:     filepath.Join(dir, "dualtrack.log"),
		SeriesDays:  30,
		ClickWindow: 200 * time.Millisecond,
		ServeAddr:   "127.0.0.1:8087",
	}
}

// Load reads config.yaml from DUALTRACK_CONFIG_PATH, the user config dir
// and the working directory, in that order of precedence, then applies
// environment overrides. A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()
	def := Defaults()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("series_days", def.SeriesDays)
	v.SetDefault("click_window", def.ClickWindow)
	v.SetDefault("serve_addr", def.ServeAddr)

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		DataDir:     v.GetString("data_dir"),
		Backend:     v.GetString("backend"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
		SeriesDays:  v.GetInt("series_days"),
		ClickWindow: v.GetDuration("click_window"),
		ServeAddr:   v.GetString("serve_addr"),
	}
	return cfg.resolve()
}

// resolve expands ~ in paths, derives the log file and checks values.
func (c Config) resolve() (Config, error) {
	var err error
	if c.DataDir, err = homedir.Expand(c.DataDir); err != nil {
		return Config{}, fmt.Errorf("expand data_dir: %w", err)
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "dualtrack.log")
	}
	if c.LogFile, err = homedir.Expand(c.LogFile); err != nil {
		return Config{}, fmt.Errorf("expand log_file: %w", err)
	}
	switch c.Backend {
	case "sqlite", "diskv":
	default:
		return Config{}, fmt.Errorf("invalid backend %q: want sqlite or diskv", c.Backend)
	}
	if c.SeriesDays <= 0 {
		return Config{}, fmt.Errorf("invalid series_days %d: must be positive", c.SeriesDays)
	}
	if c.ClickWindow <= 0 {
		return Config{}, fmt.Errorf("invalid click_window %s: must be positive", c.ClickWindow)
	}
	return c, nil
}

// Write saves c as YAML at path, creating parent directories. An existing
// file is left alone unless force is set.
func (c Config) Write(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("write config: %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	b, err := yaml.Marshal(fileConfig{
		DataDir:     c.DataDir,
		Backend:     c.Backend,
		LogLevel:    c.LogLevel,
		LogFile:     c.LogFile,
		SeriesDays:  c.SeriesDays,
		ClickWindow: c.ClickWindow.String(),
		ServeAddr:   c.ServeAddr,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath is Dir()/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName+".yaml"), nil
}
