package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/notevault/vaultmcp/internal/notes"
	"github.com/notevault/vaultmcp/internal/store"
)

var flagInspectLimit int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the vault's embedding index and print a summary",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&flagInspectLimit, "limit", 20, "Number of indexed notes to list (0 for all)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, _ []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := resolveVault()
	if err != nil {
		return err
	}
	st, err := store.Load(cfg, log)
	if err != nil {
		return err
	}

	printSection("Vault")
	printInfo("", fmt.Sprintf("root: %s", cfg.CanonicalRoot))

	printSection("Model")
	printInfo("", fmt.Sprintf("key: %s", st.Descriptor.ModelKey))
	printInfo("", fmt.Sprintf("adapter: %s", st.Descriptor.AdapterName))
	printInfo("", fmt.Sprintf("dimensions: %d", st.Descriptor.Dimensions))

	ids := st.IDs()
	printSection(fmt.Sprintf("Indexed notes (%d)", len(ids)))
	if len(ids) == 0 {
		printWarn("", "index is empty (no usable fragments for the active model)")
		return nil
	}
	printOK("", fmt.Sprintf("%d documents loaded", len(ids)))
	if flagInspectLimit > 0 && len(ids) > flagInspectLimit {
		ids = ids[:flagInspectLimit]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, id := range ids {
		entry, _ := st.Get(id)
		fmt.Fprintf(w, "  %d.\t%s\t%s\t(%d dims, %d blocks)\n",
			i+1, id, notes.DisplayTitle(id), len(entry.Vector), len(entry.Blocks))
	}
	return w.Flush()
}
