package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/notevault/vaultmcp/internal/vault"
)

// EnvRoot names the environment variable holding the vault root directory.
const EnvRoot = "VAULTMCP_ROOT"

// Dir returns the absolute path to ~/.vaultmcp/.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".vaultmcp"), nil
}

// LimitsPath returns the absolute path to ~/.vaultmcp/vaultmcp.yaml.
func LimitsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vaultmcp.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// ResolveRoot returns the effective vault root string: the flag value when
// set, otherwise the VAULTMCP_ROOT environment variable with a dotenv
// fallback. An empty result is left for vault.Resolve to reject; there is no
// implicit default root.
func ResolveRoot(flagValue string) (string, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" {
		v, err := GetConfigValue(EnvRoot)
		if err != nil {
			return "", err
		}
		raw = strings.TrimSpace(v)
	}
	if raw == "" {
		return "", nil
	}
	return ExpandPath(raw)
}

// limitsFile is the optional on-disk override for request limits.
type limitsFile struct {
	MaxResults      *int `yaml:"max_results,omitempty"`
	MaxContentBytes *int `yaml:"max_content_bytes,omitempty"`
	MaxQueryLength  *int `yaml:"max_query_length,omitempty"`
}

// LoadLimits reads ~/.vaultmcp/vaultmcp.yaml and returns the effective
// request limits. A missing file yields the defaults; unset keys keep their
// default values.
func LoadLimits() (vault.Limits, error) {
	limits := vault.DefaultLimits()

	path, err := LimitsPath()
	if err != nil {
		return limits, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return limits, nil
		}
		return limits, fmt.Errorf("cannot read limits config %s: %w", path, err)
	}

	var f limitsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return limits, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if f.MaxResults != nil && *f.MaxResults > 0 {
		limits.MaxResults = *f.MaxResults
	}
	if f.MaxContentBytes != nil && *f.MaxContentBytes > 0 {
		limits.MaxContentBytes = *f.MaxContentBytes
	}
	if f.MaxQueryLength != nil && *f.MaxQueryLength > 0 {
		limits.MaxQueryLength = *f.MaxQueryLength
	}
	return limits, nil
}
