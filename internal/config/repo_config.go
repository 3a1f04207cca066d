package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	stackererrors "stacker.dev/stacker/internal/errors"
)

// DefaultRemote is pushed to when a base branch has no remote of its own.
const DefaultRemote = "origin"

// Configuration keys accepted by Get and Set.
const (
	KeyRemote        = "remote"
	KeyPrintCommands = "printCommands"
)

// Keys lists every configuration key in display order.
var Keys = []string{KeyRemote, KeyPrintCommands}

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Remote        *string `json:"remote,omitempty"`
	PrintCommands *bool   `json:"printCommands,omitempty"`
}

// configPath returns the location of the configuration file
func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".stacker_config")
}

// GetRepoConfig reads the repository configuration. A missing file yields
// an empty configuration.
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}
	return &config, nil
}

func writeRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), append(configJSON, '\n'), 0600)
}

// RemoteOrDefault returns the configured default remote, or DefaultRemote
func (c *RepoConfig) RemoteOrDefault() string {
	if c.Remote != nil && *c.Remote != "" {
		return *c.Remote
	}
	return DefaultRemote
}

// PrintCommandsEnabled reports whether git invocations should be echoed
func (c *RepoConfig) PrintCommandsEnabled() bool {
	return c.PrintCommands != nil && *c.PrintCommands
}

// GetRemote returns the default remote for the repository
func GetRemote(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}
	return config.RemoteOrDefault(), nil
}

// SetRemote updates the default remote
func SetRemote(repoRoot string, remote string) error {
	if remote == "" {
		return stackererrors.InvalidArgument("remote must not be empty")
	}
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return err
	}
	config.Remote = &remote
	return writeRepoConfig(repoRoot, config)
}

// GetPrintCommands returns whether git invocations are echoed
func GetPrintCommands(repoRoot string) (bool, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return false, err
	}
	return config.PrintCommandsEnabled(), nil
}

// SetPrintCommands updates whether git invocations are echoed
func SetPrintCommands(repoRoot string, enabled bool) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return err
	}
	config.PrintCommands = &enabled
	return writeRepoConfig(repoRoot, config)
}

// Get returns the effective value of key as text
func Get(repoRoot string, key string) (string, error) {
	switch key {
	case KeyRemote:
		return GetRemote(repoRoot)
	case KeyPrintCommands:
		enabled, err := GetPrintCommands(repoRoot)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(enabled), nil
	default:
		return "", unknownKey(key)
	}
}

// Set parses value and stores it under key
func Set(repoRoot string, key string, value string) error {
	switch key {
	case KeyRemote:
		return SetRemote(repoRoot, value)
	case KeyPrintCommands:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return stackererrors.InvalidArgument("%s must be true or false, got %q", key, value)
		}
		return SetPrintCommands(repoRoot, enabled)
	default:
		return unknownKey(key)
	}
}

func unknownKey(key string) error {
	return stackererrors.InvalidArgument("unknown config key %q (valid keys: %s, %s)", key, KeyRemote, KeyPrintCommands)
}
