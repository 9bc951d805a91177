package factory

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/config"
)

func TestNewStoreSQLite(t *testing.T) {
	cfg := config.NewForTesting()
	s, db, err := NewStore(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if s == nil {
		t.Fatal("NewStore returned nil store")
	}
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "oracle"
	if _, _, err := NewStore(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNewStorePostgresRequiresDSN(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "postgres"
	cfg.PostgresDSN = ""
	if _, _, err := NewStore(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing DSN")
	}
}
