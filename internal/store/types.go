package store

import "sort"

// ModelDescriptor identifies the embedding model the index was built with.
type ModelDescriptor struct {
	ModelKey    string `json:"modelKey"`
	Dimensions  int    `json:"dimensions"`
	AdapterName string `json:"adapterName"`
}

// Block is optional sub-document metadata folded into its owning entry.
type Block struct {
	Hash  string `json:"hash,omitempty"`
	Size  int64  `json:"size,omitempty"`
	Lines []int  `json:"lines,omitempty"`
}

// Entry is one indexed document.
type Entry struct {
	ID     string
	Vector []float32
	Blocks map[string]Block
}

// Index maps document id to entry. It is built in one pass at startup and
// never mutated afterward, so it is safe for unlimited concurrent readers.
type Index map[string]Entry

// Store is the loaded, immutable embedding store.
type Store struct {
	Descriptor ModelDescriptor
	Index      Index
}

// Get returns the entry for id.
func (s *Store) Get(id string) (Entry, bool) {
	e, ok := s.Index[id]
	return e, ok
}

// IDs returns all document ids in lexicographic order.
func (s *Store) IDs() []string {
	out := make([]string, 0, len(s.Index))
	for id := range s.Index {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
