package actions

import (
	"fmt"

	"stacker.dev/stacker/internal/config"
	"stacker.dev/stacker/internal/runtime"
	"stacker.dev/stacker/internal/tui/style"
)

// ConfigGetAction prints the value of one configuration key
func ConfigGetAction(ctx *runtime.Context, key string) error {
	value, err := config.Get(ctx.RepoRoot, key)
	if err != nil {
		return err
	}
	ctx.Splog.Info("%s", value)
	return nil
}

// ConfigSetAction stores a configuration value
func ConfigSetAction(ctx *runtime.Context, key, value string) error {
	if err := config.Set(ctx.RepoRoot, key, value); err != nil {
		return err
	}
	ctx.Splog.Info("Set %s to %s.", style.ColorCyan(key), value)
	return nil
}

// ConfigListAction prints all configuration values
func ConfigListAction(ctx *runtime.Context) error {
	for _, key := range config.Keys {
		value, err := config.Get(ctx.RepoRoot, key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		ctx.Splog.Info("%s: %s", style.ColorCyan(key), value)
	}
	return nil
}
