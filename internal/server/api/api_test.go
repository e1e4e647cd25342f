package api

import (
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

type stubPlugins []*plugin.Plugin

func (s stubPlugins) Get(name string) (*plugin.Plugin, error) {
	for _, p := range s {
		if p.Manifest.Name == name {
			return p, nil
		}
	}
	return nil, plugin.ErrPluginNotFound
}

func (s stubPlugins) List() []*plugin.Plugin { return s }

func keyboardOnly() stubPlugins {
	return stubPlugins{{
		Manifest: plugin.Manifest{
			Name:    "keyboard",
			Version: "1.1.0",
			Actions: []string{"keystroke", "key-code"},
		},
	}}
}
