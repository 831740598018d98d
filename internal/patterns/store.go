// Package patterns holds the catalog of known source and destination
// systems: their schemas, sample payloads and semantic rules.
//
// The catalog is a single YAML (or JSON) document:
//
//	sources:
//	  senior:
//	    name: Senior HCM
//	    schema: { ... }          # JSON Schema or a sample payload
//	    samplePayload: { ... }
//	    semanticRules:
//	      synonymGroups: { ... }
//	destinations:
//	  workday:
//	    name: Workday
//	    schema: { ... }
package patterns

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"hrbridge/internal/analyze"
	"hrbridge/internal/mapping"
)

// ErrUnknownSource is returned for identifiers the catalog does not know.
var ErrUnknownSource = errors.New("unknown source system")

// ErrUnknownDestination is returned for destination identifiers the catalog
// does not know.
var ErrUnknownDestination = errors.New("unknown destination system")

// Source is a source system: where employee data comes from.
type Source struct {
	ID            string
	Name          string
	Schema        *analyze.Schema
	SamplePayload map[string]any
	Rules         mapping.SemanticRules
}

// Destination is a target system.
type Destination struct {
	ID     string
	Name   string
	Schema *analyze.Schema
}

type sourceDoc struct {
	Name          string                `yaml:"name"`
	Schema        yaml.Node             `yaml:"schema"`
	SamplePayload map[string]any        `yaml:"samplePayload"`
	SemanticRules mapping.SemanticRules `yaml:"semanticRules"`
}

type destinationDoc struct {
	Name   string    `yaml:"name"`
	Schema yaml.Node `yaml:"schema"`
}

type catalogDoc struct {
	Sources      map[string]sourceDoc      `yaml:"sources"`
	Destinations map[string]destinationDoc `yaml:"destinations"`
}

// Store is a read-only catalog loaded once.
type Store struct {
	sources      map[string]*Source
	destinations map[string]*Destination
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern catalog: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Store, error) {
	var doc catalogDoc

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	s := &Store{
		sources:      make(map[string]*Source, len(doc.Sources)),
		destinations: make(map[string]*Destination, len(doc.Destinations)),
	}

	for id, d := range doc.Sources {
		schema, err := schemaOf(&d.Schema)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", id, err)
		}

		s.sources[id] = &Source{
			ID:            id,
			Name:          nameOr(d.Name, id),
			Schema:        schema.Tagged(d.SemanticRules.Tags),
			SamplePayload: d.SamplePayload,
			Rules:         d.SemanticRules,
		}
	}

	for id, d := range doc.Destinations {
		schema, err := schemaOf(&d.Schema)
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", id, err)
		}

		s.destinations[id] = &Destination{ID: id, Name: nameOr(d.Name, id), Schema: schema}
	}

	return s, nil
}

// schemaOf re-encodes the node so the analyzer sees keys in file order.
func schemaOf(n *yaml.Node) (*analyze.Schema, error) {
	if n.Kind == 0 {
		return analyze.NewSchema(nil), nil
	}

	data, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}

	return analyze.Parse(data)
}

func nameOr(name, id string) string {
	if name == "" {
		return id
	}

	return name
}

// Get returns the source system with the given id.
func (s *Store) Get(id string) (*Source, error) {
	src, ok := s.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, id)
	}

	return src, nil
}

// Destination returns the destination system with the given id.
func (s *Store) Destination(id string) (*Destination, error) {
	dst, ok := s.destinations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDestination, id)
	}

	return dst, nil
}

// Sources returns the source ids, sorted.
func (s *Store) Sources() []string {
	return sortedKeys(s.sources)
}

// Destinations returns the destination ids, sorted.
func (s *Store) Destinations() []string {
	return sortedKeys(s.destinations)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
