package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is written to files that do not declare one.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML or JSON mapping file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML (or JSON) data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}

	if err := applyDefaults(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields and validates
// paths.
func applyDefaults(f *File) error {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	for i := range f.Mappings {
		m := &f.Mappings[i]

		if _, err := ParsePath(m.SourceField.Path); err != nil {
			return fmt.Errorf("mapping %d: source: %w", i, err)
		}

		if _, err := ParsePath(m.TargetPath); err != nil {
			return fmt.Errorf("mapping %d: target: %w", i, err)
		}

		if m.SourceField.Name == "" {
			m.SourceField.Name = m.SourceField.LeafName()
		}

		if m.ID == "" {
			m.ID = ID(m.SourceField.Path, m.TargetPath)
		}

		if m.Confidence != nil {
			c := NormalizeConfidence(*m.Confidence)
			m.Confidence = &c
		}
	}

	return nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path. A ".json" extension selects
// JSON output; anything else is written as YAML.
func WriteFile(f *File, path string) error {
	var (
		data []byte
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(f, "", "  ")
	} else {
		data, err = Marshal(f)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
