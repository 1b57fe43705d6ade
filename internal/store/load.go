package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/notevault/vaultmcp/internal/vault"
)

// pendingBlock is a sub-block record waiting to be folded into its owning
// document once all fragments have been read.
type pendingBlock struct {
	doc   string
	block string
	meta  Block
}

// Load reads the model descriptor and every append-log fragment under the
// vault's index directory and builds the immutable in-memory store. It runs
// once at process start.
//
// Only a missing or unparsable descriptor is fatal. A corrupt fragment or
// record is logged and skipped: partial index availability is preferred over
// total failure.
func Load(cfg *vault.Config, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	desc, err := loadDescriptor(cfg.DescriptorPath())
	if err != nil {
		return nil, err
	}

	dims, known := knownModelDims[desc.ModelKey]
	if !known {
		dims = defaultDimensions
		log.Warn("unknown embedding model, assuming default width",
			"model", desc.ModelKey,
			"dimensions", dims,
		)
	}
	desc.Dimensions = dims

	indexDir := cfg.IndexDir()

	// Best effort shared lock on the descriptor so a writer appending to
	// the log can coordinate with us. Locking on the existing descriptor
	// avoids writing any state into the vault; a held lock never blocks a
	// read-only load.
	lock := flock.New(cfg.DescriptorPath())
	if locked, err := lock.TryRLock(); err == nil && locked {
		defer func() { _ = lock.Unlock() }()
	}

	names, err := fragmentNames(indexDir)
	if err != nil {
		return nil, &vault.ConfigError{Path: indexDir, Msg: "cannot enumerate index fragments", Err: err}
	}

	idx := make(Index)
	var pending []pendingBlock

	for _, name := range names {
		path := filepath.Join(indexDir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn("cannot read fragment, skipping", "fragment", name, "error", err)
			continue
		}
		records, err := parseFragment(raw)
		if err != nil {
			log.Warn("malformed fragment skipped", "fragment", name, "error", err)
			continue
		}
		pending = append(pending, applyFragment(idx, records, desc, known, log)...)
	}

	foldBlocks(idx, pending)

	log.Info("embedding index loaded",
		"model", desc.ModelKey,
		"dimensions", desc.Dimensions,
		"documents", len(idx),
		"fragments", len(names),
	)
	return &Store{Descriptor: desc, Index: idx}, nil
}

// fragmentNames lists the *.ajson fragments in dir in name order, which is
// the enumeration order last-write-wins is defined over.
func fragmentNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), FragmentExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// applyFragment folds one parsed fragment into idx and returns the sub-block
// records to be applied after all fragments are read. Record failures are
// isolated: a bad record never discards the fragment's other records.
func applyFragment(idx Index, records map[string]json.RawMessage, desc ModelDescriptor, strictDims bool, log *slog.Logger) []pendingBlock {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pending []pendingBlock
	for _, key := range keys {
		if !strings.HasPrefix(key, sourcePrefix) {
			continue
		}
		id := strings.TrimPrefix(key, sourcePrefix)

		if i := strings.IndexByte(id, blockSeparator); i >= 0 {
			var bv blockValue
			if err := json.Unmarshal(records[key], &bv); err != nil {
				log.Warn("invalid sub-block record skipped", "key", vault.SanitizeInput(key), "error", err)
				continue
			}
			pending = append(pending, pendingBlock{
				doc:   id[:i],
				block: id[i+1:],
				meta:  Block{Hash: bv.Hash, Size: bv.Size, Lines: bv.Lines},
			})
			continue
		}

		var rv recordValue
		if err := json.Unmarshal(records[key], &rv); err != nil {
			log.Warn("invalid document record skipped", "id", vault.SanitizeInput(id), "error", err)
			continue
		}
		emb, ok := rv.Embeddings[desc.ModelKey]
		if !ok || len(emb.Vec) == 0 {
			// Indexed under a different, inactive model; contributes nothing.
			continue
		}
		if strictDims && len(emb.Vec) != desc.Dimensions {
			log.Warn("dimension mismatch, entry rejected",
				"id", vault.SanitizeInput(id),
				"got", len(emb.Vec),
				"want", desc.Dimensions,
			)
			continue
		}
		// Later fragments supersede earlier entries for the same id.
		idx[id] = Entry{ID: id, Vector: emb.Vec, Blocks: rv.Blocks}
	}
	return pending
}

// foldBlocks attaches sub-block metadata to owning documents. Blocks for
// documents that never materialized are dropped.
func foldBlocks(idx Index, pending []pendingBlock) {
	for _, pb := range pending {
		e, ok := idx[pb.doc]
		if !ok {
			continue
		}
		if e.Blocks == nil {
			e.Blocks = make(map[string]Block)
		}
		e.Blocks[pb.block] = pb.meta
		idx[pb.doc] = e
	}
}
