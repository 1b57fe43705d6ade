package vault

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// IndexDirName is the marker subdirectory holding the embedding index.
	IndexDirName = ".embeddings"
	// DescriptorFileName is the model descriptor inside IndexDirName.
	DescriptorFileName = "config.json"
)

// Limits caps caller-facing request parameters.
type Limits struct {
	MaxResults      int
	MaxContentBytes int
	MaxQueryLength  int
}

// DefaultLimits returns the limits used when no override is configured.
func DefaultLimits() Limits {
	return Limits{
		MaxResults:      50,
		MaxContentBytes: 100_000,
		MaxQueryLength:  512,
	}
}

// Config is the immutable resolved vault configuration. It is created once
// at startup and shared read-only by every request handler.
type Config struct {
	// RootPath is the absolute form of the caller-supplied root.
	RootPath string
	// CanonicalRoot is RootPath after full symlink resolution, with no
	// trailing separator. Every containment check uses this value.
	CanonicalRoot string
	Limits        Limits
}

// DescriptorPath returns the absolute path to the model descriptor file.
func (c *Config) DescriptorPath() string {
	return filepath.Join(c.CanonicalRoot, IndexDirName, DescriptorFileName)
}

// IndexDir returns the absolute path to the embedding index directory.
func (c *Config) IndexDir() string {
	return filepath.Join(c.CanonicalRoot, IndexDirName)
}

// Resolve validates and canonicalizes the configured vault root. It runs once
// at startup; any failure is fatal to the process.
func Resolve(raw string, limits Limits) (*Config, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ConfigError{Msg: "vault root is not set (pass --root or set VAULTMCP_ROOT)"}
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return nil, &ConfigError{Path: raw, Msg: "cannot resolve vault root", Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &ConfigError{Path: abs, Msg: "vault root does not exist", Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Path: abs, Msg: "vault root is not a directory"}
	}

	if err := rejectBroadRoot(abs); err != nil {
		return nil, err
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, &ConfigError{Path: abs, Msg: "cannot canonicalize vault root", Err: err}
	}
	canonical = filepath.Clean(canonical)
	if err := rejectBroadRoot(canonical); err != nil {
		return nil, err
	}

	cfg := &Config{RootPath: abs, CanonicalRoot: canonical, Limits: limits}

	if _, err := os.Stat(cfg.DescriptorPath()); err != nil {
		return nil, &ConfigError{
			Path: cfg.DescriptorPath(),
			Msg:  "vault has no embedding index (descriptor missing)",
			Err:  err,
		}
	}
	return cfg, nil
}

// rejectBroadRoot refuses confinement roots that would make containment
// checks meaningless: the filesystem root and the user's home directory.
func rejectBroadRoot(abs string) error {
	if abs == filepath.Dir(abs) {
		return &ConfigError{Path: abs, Msg: "refusing to serve the filesystem root"}
	}
	if home, err := os.UserHomeDir(); err == nil && abs == filepath.Clean(home) {
		return &ConfigError{Path: abs, Msg: "refusing to serve the home directory"}
	}
	return nil
}
