package store

import (
	"encoding/json"
	"os"

	"github.com/notevault/vaultmcp/internal/vault"
)

// descriptorFile mirrors the fixed nested structure of the descriptor JSON:
// sources-config → embedding-model → { adapter-name, model-key }.
type descriptorFile struct {
	SourcesConfig struct {
		EmbeddingModel struct {
			AdapterName string `json:"adapter-name"`
			ModelKey    string `json:"model-key"`
		} `json:"embedding-model"`
	} `json:"sources-config"`
}

// knownModelDims maps recognized model keys to their vector widths.
var knownModelDims = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
	"bge-m3":                 1024,
	"all-minilm":             384,
}

// defaultDimensions is the conservative width assumed for unknown models.
const defaultDimensions = 1536

// loadDescriptor parses the model descriptor file. A missing or unparsable
// descriptor is fatal: without a model key the index cannot be associated
// with vector semantics.
func loadDescriptor(path string) (ModelDescriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ModelDescriptor{}, &vault.ConfigError{Path: path, Msg: "cannot read model descriptor", Err: err}
	}
	var f descriptorFile
	if err := json.Unmarshal(b, &f); err != nil {
		return ModelDescriptor{}, &vault.ConfigError{Path: path, Msg: "invalid model descriptor JSON", Err: err}
	}
	m := f.SourcesConfig.EmbeddingModel
	if m.ModelKey == "" {
		return ModelDescriptor{}, &vault.ConfigError{Path: path, Msg: "model descriptor has no model-key"}
	}
	return ModelDescriptor{ModelKey: m.ModelKey, AdapterName: m.AdapterName}, nil
}
