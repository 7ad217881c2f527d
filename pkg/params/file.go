package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SettingsSection is the table a settings file may nest the generator
// configuration under.
const SettingsSection = "mg_math"

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for unsupported file extensions or formats.
var ErrUnknownFormat = errors.New("params: unknown configuration format")

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Unmarshal decodes data in the given format. If the document has a
// SettingsSection table, that table is the configuration.
func Unmarshal(data []byte, format Format) (RawConfiguration, error) {
	m := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("params: decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("params: decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("params: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if section, ok := m[SettingsSection].(map[string]any); ok {
		return RawConfiguration(section), nil
	}
	if m == nil {
		m = make(map[string]any)
	}
	return RawConfiguration(m), nil
}

// Marshal encodes raw in the given format.
func Marshal(raw RawConfiguration, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(map[string]any(raw)); err != nil {
			return nil, fmt.Errorf("params: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(map[string]any(raw))
		if err != nil {
			return nil, fmt.Errorf("params: encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(map[string]any(raw), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("params: encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// LoadFile reads a configuration file, picking the format from its extension.
func LoadFile(path string) (RawConfiguration, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("params: read %s: %w", path, err)
	}
	return Unmarshal(data, format)
}

// SaveFile writes raw to path, picking the format from its extension.
func SaveFile(path string, raw RawConfiguration) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(raw, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("params: write %s: %w", path, err)
	}
	return nil
}
