package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notevault/vaultmcp/internal/config"
	"github.com/notevault/vaultmcp/internal/vault"
)

var flagRoot string

var rootCmd = &cobra.Command{
	Use:          "vaultmcp",
	Short:        "Read-only semantic search over a note vault's precomputed embeddings",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `vaultmcp serves a note vault's precomputed vector embeddings to MCP
clients for semantic search and note retrieval. The vault is never written;
every caller-supplied path is re-validated against the vault root on every
request.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "",
		"Vault root directory (falls back to VAULTMCP_ROOT)")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveVault turns the --root flag / environment into a validated Config.
// Any failure here is fatal: there is no degraded mode for an invalid root.
func resolveVault() (*vault.Config, error) {
	raw, err := config.ResolveRoot(flagRoot)
	if err != nil {
		return nil, err
	}
	limits, err := config.LoadLimits()
	if err != nil {
		return nil, err
	}
	return vault.Resolve(raw, limits)
}
