package testsupport

import (
	"testing"

	"pitcount/internal/config"
	"pitcount/internal/store"
)

// MustOpenStore opens a workspace store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}
