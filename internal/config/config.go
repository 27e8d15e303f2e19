package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// RepoFileName is the repository config file inside the git directory
	RepoFileName = "snap.yaml"

	DefaultRemote         = "origin"
	DefaultHistoryLimit   = 10
	DefaultCommandTimeout = 5 * time.Minute
)

// File is the on-disk form of a config file. Unset fields leave the
// lower layer's value in place.
type File struct {
	Remote         *string `yaml:"remote,omitempty"`
	AutoPush       *bool   `yaml:"auto_push,omitempty"`
	HistoryLimit   *int    `yaml:"history_limit,omitempty"`
	CommandTimeout *string `yaml:"command_timeout,omitempty"`
	LogFile        *string `yaml:"log_file,omitempty"`
}

// Config is the resolved configuration
type Config struct {
	Remote         string
	AutoPush       bool
	HistoryLimit   int
	CommandTimeout time.Duration
	LogFile        string
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Remote:         DefaultRemote,
		AutoPush:       true,
		HistoryLimit:   DefaultHistoryLimit,
		CommandTimeout: DefaultCommandTimeout,
	}
}

// UserConfigPath returns the user config file path
func UserConfigPath() (string, error) {
	if path := os.Getenv("SNAP_CONFIG"); path != "" {
		return os.ExpandEnv(path), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "snap", "config.yaml"), nil
}

// RepoConfigPath returns the repository config file path for gitDir
func RepoConfigPath(gitDir string) string {
	return filepath.Join(gitDir, RepoFileName)
}

// Load resolves the configuration for the repository at gitDir. An empty
// gitDir skips the repository layer. Missing files are not errors.
func Load(gitDir string) (*Config, error) {
	cfg := Default()

	userPath, err := UserConfigPath()
	if err != nil {
		return nil, err
	}
	paths := []string{userPath}
	if gitDir != "" {
		paths = append(paths, RepoConfigPath(gitDir))
	}

	for _, path := range paths {
		file, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.apply(file); err != nil {
			return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ReadFile parses a config file. It returns an empty File when path does not exist.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &file, nil
}

func (c *Config) apply(f *File) error {
	if f.Remote != nil {
		c.Remote = strings.TrimSpace(*f.Remote)
	}
	if f.AutoPush != nil {
		c.AutoPush = *f.AutoPush
	}
	if f.HistoryLimit != nil {
		c.HistoryLimit = *f.HistoryLimit
	}
	if f.CommandTimeout != nil {
		d, err := time.ParseDuration(*f.CommandTimeout)
		if err != nil {
			return fmt.Errorf("command_timeout: %w", err)
		}
		c.CommandTimeout = d
	}
	if f.LogFile != nil {
		c.LogFile = os.ExpandEnv(*f.LogFile)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if remote := os.Getenv("SNAP_REMOTE"); remote != "" {
		c.Remote = remote
	}
	if value := os.Getenv("SNAP_NO_PUSH"); value != "" {
		noPush, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("SNAP_NO_PUSH: %w", err)
		}
		c.AutoPush = !noPush
	}
	return nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if strings.ContainsAny(c.Remote, " \t\n") {
		return fmt.Errorf("remote %q must not contain whitespace", c.Remote)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	return nil
}
