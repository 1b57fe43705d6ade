package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FragmentExt is the extension of append-log fragment files.
const FragmentExt = ".ajson"

// sourcePrefix marks document-level record keys. Keys under other prefixes
// never become top-level index entries.
const sourcePrefix = "sources:"

// blockSeparator splits a document id from a sub-block id inside a key. A key
// containing it is always a sub-block record, never a document.
const blockSeparator = '#'

// repairFragment turns raw append-log bytes into a parseable JSON document.
// Fragments are written append-only, one record per line, with no enclosing
// object and possibly a dangling trailing comma from an interrupted write:
// stage one of the parse strips that comma and wraps the whole in braces.
func repairFragment(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	body = bytes.TrimSuffix(body, []byte(","))

	out := make([]byte, 0, len(body)+2)
	out = append(out, '{')
	out = append(out, body...)
	out = append(out, '}')
	return out
}

// parseFragment repairs and parses one fragment into raw records keyed by the
// record key. Values stay unparsed so one malformed record cannot discard a
// fragment's other valid records.
func parseFragment(raw []byte) (map[string]json.RawMessage, error) {
	records := make(map[string]json.RawMessage)
	if err := json.Unmarshal(repairFragment(raw), &records); err != nil {
		return nil, fmt.Errorf("fragment does not parse after repair: %w", err)
	}
	return records, nil
}

// recordValue is the decoded shape of a document-level record.
type recordValue struct {
	Embeddings map[string]struct {
		Vec []float32 `json:"vec"`
	} `json:"embeddings"`
	Blocks map[string]Block `json:"blocks"`
}

// blockValue is the decoded shape of a sub-block record.
type blockValue struct {
	Hash  string `json:"hash"`
	Size  int64  `json:"size"`
	Lines []int  `json:"lines"`
}
