package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSchema decodes a schema document from JSON or YAML. YAML payloads are
// normalised through JSON so the Value variant decoding applies to both
// encodings.
func ParseSchema(data []byte) (FormSchema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FormSchema{}, fmt.Errorf("schema: document is empty")
	}

	var out FormSchema
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return FormSchema{}, fmt.Errorf("schema: parse document: invalid JSON or YAML")
	}
	bridged, err := json.Marshal(generic)
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: bridge yaml document: %w", err)
	}
	if err := json.Unmarshal(bridged, &out); err != nil {
		return FormSchema{}, fmt.Errorf("schema: decode document: %w", err)
	}
	return out, nil
}

// EncodeSchema emits the canonical JSON form of a schema.
func EncodeSchema(s FormSchema) ([]byte, error) {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	return payload, nil
}

// LoadSchemaFS reads and parses a schema document from a filesystem.
func LoadSchemaFS(fsys fs.FS, path string) (FormSchema, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := ParseSchema(data)
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: %s: %w", path, err)
	}
	return doc, nil
}
