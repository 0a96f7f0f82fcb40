package cmd

import (
	"fmt"
	"os"

	"github.com/vecscope/vecscope/internal/config"
	"github.com/vecscope/vecscope/internal/history"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `vecscope init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openHistory opens the load history store. Failures are reported but not
// fatal: inspection must work even when the history database cannot be
// written.
func openHistory(cfg *config.Config) *history.Store {
	db, err := history.Open(cfg.History())
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: load history disabled: %v\n", err)
		}
		return nil
	}
	return history.NewStore(db)
}
