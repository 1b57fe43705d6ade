package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newVaultDir creates a directory carrying the index marker so Resolve
// accepts it.
func newVaultDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	idx := filepath.Join(root, IndexDirName)
	if err := os.MkdirAll(idx, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(idx, DescriptorFileName), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestResolve_HappyPath(t *testing.T) {
	root := newVaultDir(t)

	cfg, err := Resolve(root, DefaultLimits())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.CanonicalRoot == "" || cfg.CanonicalRoot[len(cfg.CanonicalRoot)-1] == os.PathSeparator {
		t.Fatalf("canonical root has trailing separator: %q", cfg.CanonicalRoot)
	}
	info, err := os.Stat(cfg.CanonicalRoot)
	if err != nil || !info.IsDir() {
		t.Fatalf("canonical root is not an existing directory: %q", cfg.CanonicalRoot)
	}
}

func TestResolve_EmptyRoot(t *testing.T) {
	if _, err := Resolve("  ", DefaultLimits()); err == nil {
		t.Fatal("expected error for unset root")
	}
}

func TestResolve_MissingRoot(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope"), DefaultLimits())
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestResolve_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "file")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(p, DefaultLimits()); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestResolve_RejectsFilesystemRoot(t *testing.T) {
	if _, err := Resolve(string(os.PathSeparator), DefaultLimits()); err == nil {
		t.Fatal("expected error for filesystem root")
	}
}

func TestResolve_RejectsHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Resolve(home, DefaultLimits()); err == nil {
		t.Fatal("expected error for home directory root")
	}
}

func TestResolve_MissingIndexMarker(t *testing.T) {
	root := t.TempDir()
	_, err := Resolve(root, DefaultLimits())
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError for missing descriptor, got %v", err)
	}
}

func TestResolve_CanonicalizesSymlinkedRoot(t *testing.T) {
	real := newVaultDir(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cfg, err := Resolve(link, DefaultLimits())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want, _ := filepath.EvalSymlinks(real)
	if cfg.CanonicalRoot != want {
		t.Fatalf("canonical root = %q, want %q", cfg.CanonicalRoot, want)
	}
}
