package changes

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-controlkit/pkg/source"
)

// Format identifies a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the encoding from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeSnapshot decodes a snapshot. YAML documents are routed through JSON
// so both encodings yield identical value types (float64 numbers,
// map[string]any objects) and compare equal when they describe the same
// state.
func DecodeSnapshot(data []byte, format Format) (*Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Snapshot{}, nil
	}

	switch format {
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("changes: decode yaml snapshot: %w", err)
		}
		if raw == nil {
			return &Snapshot{}, nil
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("changes: convert yaml snapshot: %w", err)
		}
		data = converted
	case FormatJSON, "":
	default:
		return nil, fmt.Errorf("changes: unsupported snapshot format %q", format)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("changes: decode json snapshot: %w", err)
	}
	return &snap, nil
}

// DecodeDocument decodes a loaded document, inferring the encoding from its
// location.
func DecodeDocument(doc source.Document) (*Snapshot, error) {
	snap, err := DecodeSnapshot(doc.Raw(), FormatFromPath(doc.Location()))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, doc.Location())
	}
	return snap, nil
}
