package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a stored block document has no content.
var ErrEmptyDocument = errors.New("block: document is empty")

// DefaultIDKey names the object key holding each block's instance id.
const DefaultIDKey = "id"

// DecodeOption customises Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	idKey string
}

// WithIDKey overrides the object key read as the instance id.
func WithIDKey(key string) DecodeOption {
	return func(cfg *decodeConfig) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			cfg.idKey = trimmed
		}
	}
}

type wrappedDocument struct {
	Blocks []map[string]any `json:"blocks" yaml:"blocks"`
}

// Decode parses a JSON array or YAML sequence of block objects. A wrapper
// object with a top-level "blocks" list is accepted too. Each object's id key
// becomes the instance id; blocks without one are numbered by their 1-based
// position. All keys, the id included, are kept as field values.
func Decode(data []byte, source string, options ...DecodeOption) ([]Record, error) {
	cfg := decodeConfig{idKey: DefaultIDKey}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	raw, err := parseBlocks(data, source)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raw))
	seen := make(map[string]int, len(raw))
	for idx, values := range raw {
		id := strconv.Itoa(idx + 1)
		if rawID, ok := values[cfg.idKey]; ok {
			if candidate := strings.TrimSpace(String(rawID)); candidate != "" {
				id = candidate
			}
		}
		if prev, exists := seen[id]; exists {
			return nil, fmt.Errorf("block: %s defines duplicate id %q (entries %d and %d)", source, id, prev+1, idx+1)
		}
		seen[id] = idx
		records = append(records, NewRecord(id, normaliseValues(values)))
	}
	return records, nil
}

// LoadFile reads and decodes a stored block document from disk.
func LoadFile(path string, options ...DecodeOption) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("block: read %s: %w", path, err)
	}
	return Decode(data, path, options...)
}

// LoadFS walks fsys and decodes every JSON/YAML file it finds, returning the
// documents keyed by path. A nil fsys yields an empty result.
func LoadFS(fsys fs.FS, options ...DecodeOption) (map[string][]Record, error) {
	out := make(map[string][]Record)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDataFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("block: read %s: %w", path, err)
		}
		records, err := Decode(data, path, options...)
		if err != nil {
			return err
		}
		out[path] = records
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Paths returns the sorted keys of a LoadFS result.
func Paths(docs map[string][]Record) []string {
	paths := make([]string, 0, len(docs))
	for path := range docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func parseBlocks(data []byte, source string) ([]map[string]any, error) {
	var list []map[string]any
	if err := decodeJSON(data, &list); err == nil {
		return list, nil
	}
	var wrapped wrappedDocument
	if err := decodeJSON(data, &wrapped); err == nil && wrapped.Blocks != nil {
		return wrapped.Blocks, nil
	}

	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	wrapped = wrappedDocument{}
	if err := yaml.Unmarshal(data, &wrapped); err == nil && wrapped.Blocks != nil {
		return wrapped.Blocks, nil
	}

	return nil, fmt.Errorf("block: parse %s: expected a JSON or YAML list of blocks", source)
}

func decodeJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dest)
}

// normaliseValues flattens YAML/JSON scalars so values compare the same way
// regardless of which decoder produced them.
func normaliseValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			continue
		}
		out[trimmed] = normaliseValue(value)
	}
	return out
}

func normaliseValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = normaliseValue(entry)
		}
		return out
	default:
		return v
	}
}

func isDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
