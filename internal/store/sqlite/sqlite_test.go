package sqlite

import (
	"testing"

	"github.com/google/uuid"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store"
	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (store.Store, storetest.ExecFunc) {
		// Named in-memory database so the suite gets an isolated store.
		dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
		db, err := Open(dsn)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })

		exec := func(query string, args ...any) error {
			_, err := db.Exec(query, args...)
			return err
		}
		return NewWithDB(db), exec
	})
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
