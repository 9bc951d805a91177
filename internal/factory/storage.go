// Package factory wires configuration to concrete infrastructure.
package factory

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/config"
	storepkg "github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
	storepg "github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store/postgres"
	storelite "github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured driver along with the
// underlying handle so the caller can close it on shutdown.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, *sql.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, nil, fmt.Errorf("TIMELINE_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info().Str("driver", "postgres").Msg("store ready")
		return storepg.NewWithDB(db), db, nil
	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info().Str("driver", "sqlite").Str("path", cfg.SQLitePath).Msg("store ready")
		return storelite.NewWithDB(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
