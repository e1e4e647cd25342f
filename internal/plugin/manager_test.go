package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, root string, m Manifest) {
	t.Helper()
	dir := filepath.Join(root, m.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, Manifest{
		Name:       "keyboard",
		Version:    "1.0.0",
		Executable: "keyboard",
		Actions:    []string{"keystroke", "key-code"},
	})
	writeManifest(t, root, Manifest{Name: "alpha", Executable: "alpha"})

	m := NewManager(root, nil)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := m.List()
	if len(plugins) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(plugins))
	}
	if plugins[0].Manifest.Name != "alpha" || plugins[1].Manifest.Name != "keyboard" {
		t.Errorf("List() not sorted: %s, %s", plugins[0].Manifest.Name, plugins[1].Manifest.Name)
	}

	kb := plugins[1]
	if kb.Path != filepath.Join(root, "keyboard") {
		t.Errorf("Path = %q", kb.Path)
	}
	if kb.Executable != filepath.Join(root, "keyboard", "keyboard") {
		t.Errorf("Executable = %q", kb.Executable)
	}
	if !kb.Supports("key-code") {
		t.Error("expected key-code action")
	}
}

func TestManager_Discover_SkipsBadEntries(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, Manifest{Name: "good", Executable: "good"})

	bad := filepath.Join(root, "bad")
	os.MkdirAll(bad, 0o755)
	os.WriteFile(filepath.Join(bad, manifestFile), []byte("{not json"), 0o644)

	noExec := filepath.Join(root, "noexec")
	os.MkdirAll(noExec, 0o755)
	os.WriteFile(filepath.Join(noExec, manifestFile), []byte(`{"name":"noexec"}`), 0o644)

	os.MkdirAll(filepath.Join(root, "empty"), 0o755)
	os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644)

	m := NewManager(root, nil)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if got := len(m.List()); got != 1 {
		t.Errorf("expected only the valid plugin, got %d", got)
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing"), nil)

	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() on a missing dir = %v, want nil", err)
	}
	if len(m.List()) != 0 {
		t.Error("expected no plugins")
	}
}

func TestManager_Discover_Rescan(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, Manifest{Name: "first", Executable: "first"})

	m := NewManager(root, nil)
	m.Discover()

	os.RemoveAll(filepath.Join(root, "first"))
	writeManifest(t, root, Manifest{Name: "second", Executable: "second"})
	m.Discover()

	if _, err := m.Get("first"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("removed plugin still present: %v", err)
	}
	if _, err := m.Get("second"); err != nil {
		t.Errorf("Get(second) = %v", err)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	m.Discover()

	if _, err := m.Get("nope"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("Get() error = %v, want ErrPluginNotFound", err)
	}
}

func TestManager_Dir(t *testing.T) {
	if got := NewManager("/opt/mudra/plugins", nil).Dir(); got != "/opt/mudra/plugins" {
		t.Errorf("Dir() = %q", got)
	}
}
