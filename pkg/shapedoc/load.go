package shapedoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

// Supported formats. JSON is read by the YAML decoder.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat reports a file extension with no known format.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatYAML, FormatJSON, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Decode parses data in the given format, validates it against the schema
// and the structural rules, and returns the document.
func Decode(data []byte, format Format) (*Document, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	err = validateSchema(normalized)
	if err != nil {
		return nil, err
	}

	var doc Document

	err = json.Unmarshal(normalized, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	err = doc.Validate()
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func decodeRaw(data []byte, format Format) (any, error) {
	switch format {
	case FormatYAML, FormatJSON:
		var raw any

		err := yaml.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", format, err)
		}

		return raw, nil
	case FormatTOML:
		raw := map[string]any{}

		err := toml.Unmarshal(data, &raw)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}

		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
