package git

import (
	"context"
	"fmt"
	"slices"
)

// git config exits with these codes when there is nothing to read or unset.
const (
	configExitKeyMissing   = 1
	configExitNothingUnset = 5
)

// GetConfigValues returns every value of a multi-valued config key
func (r *Repo) GetConfigValues(ctx context.Context, key string) ([]string, error) {
	values, err := r.runner.RunLines(ctx, "config", "--get-all", key)
	if err != nil {
		if exitCode(err) == configExitKeyMissing {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return values, nil
}

// AddConfigValue adds value to key unless it is already present
func (r *Repo) AddConfigValue(ctx context.Context, key, value string) error {
	values, err := r.GetConfigValues(ctx, key)
	if err != nil {
		return err
	}
	if slices.Contains(values, value) {
		return nil
	}
	if _, err := r.runner.Run(ctx, "config", "--add", key, value); err != nil {
		return fmt.Errorf("failed to add config %s: %w", key, err)
	}
	return nil
}

// RemoveConfigValuesMatching removes every value of key matching pattern
func (r *Repo) RemoveConfigValuesMatching(ctx context.Context, key, pattern string) error {
	if _, err := r.runner.Run(ctx, "config", "--unset-all", key, pattern); err != nil {
		if exitCode(err) == configExitNothingUnset {
			return nil
		}
		return fmt.Errorf("failed to unset config %s: %w", key, err)
	}
	return nil
}
