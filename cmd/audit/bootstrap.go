package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"trade-audit/internal/interfaces"
	"trade-audit/internal/ledger/csvfile"
	"trade-audit/internal/ledger/kite"
	"trade-audit/internal/ledger/sourceobs"
	"trade-audit/internal/logger"
	"trade-audit/internal/store"
	"trade-audit/internal/trace"
)

// initializeSystem loads the environment and brings up the logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// buildSource picks the ledger source for this run and wraps it with
// observability middleware.
func buildSource(cfg *store.Config, loc *time.Location) (interfaces.Source, error) {
	switch cfg.Source {
	case "KITE":
		src, err := kite.New(kite.Params{
			APIKey:      os.Getenv(cfg.Kite.APIKeyEnv),
			AccessToken: os.Getenv(cfg.Kite.AccessTokenEnv),
			Location:    loc,
		})
		if err != nil {
			return nil, err
		}
		return sourceobs.Wrap(src), nil
	default:
		return sourceobs.Wrap(csvfile.New(csvfile.Params{
			Path:       cfg.Ledger.Path,
			FileName:   cfg.Ledger.FileName,
			SearchDirs: cfg.Ledger.SearchDirs,
		})), nil
	}
}
