package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed properties.json
var defaultDataset []byte

// NotFoundError indicates a named property does not exist in the catalog.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("property %q not found", e.Name)
}

// Store holds the property catalog. It is loaded once and read-only
// afterwards, so it is safe for concurrent readers without locking.
type Store struct {
	properties []Property
	byID       map[int64]int
	byName     map[string]int // lower-cased name -> index
}

// Load parses the embedded default dataset.
func Load() (*Store, error) {
	return loadBytes(defaultDataset)
}

// LoadFile parses a dataset from the given path instead of the embedded one.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return loadBytes(data)
}

// NewStore builds a store from an already-parsed slice. Used by tests.
func NewStore(properties []Property) *Store {
	s := &Store{
		properties: properties,
		byID:       make(map[int64]int, len(properties)),
		byName:     make(map[string]int, len(properties)),
	}
	for i, p := range properties {
		s.byID[p.ID] = i
		s.byName[strings.ToLower(p.Name)] = i
	}
	return s
}

func loadBytes(data []byte) (*Store, error) {
	var properties []Property
	if err := json.Unmarshal(data, &properties); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return NewStore(properties), nil
}

// All returns the full catalog in load order. The slice is a copy, so
// callers can reorder it freely.
func (s *Store) All() []Property {
	out := make([]Property, len(s.properties))
	copy(out, s.properties)
	return out
}

// Count returns the number of properties in the catalog.
func (s *Store) Count() int {
	return len(s.properties)
}

// ByID returns the property with the given ID, or nil if absent.
func (s *Store) ByID(id int64) *Property {
	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	p := s.properties[i]
	return &p
}

// ByName returns the property with the given name (case-insensitive),
// or a NotFoundError if absent.
func (s *Store) ByName(name string) (*Property, error) {
	i, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	p := s.properties[i]
	return &p, nil
}
