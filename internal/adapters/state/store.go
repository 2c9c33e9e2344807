// Package state implements the translation record store as a flat JSON file.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPath is the store location relative to the working directory.
const DefaultPath = ".weld/state.json"

var _ ports.TranslationStore = (*Store)(nil)

// Store implements ports.TranslationStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.TranslationRecord
}

// NewStore creates a new TranslationStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.TranslationRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read translation store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal translation store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal translation store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for translation store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write translation store")
	}

	return nil
}

// Get retrieves the record for an artifact identifier.
func (s *Store) Get(identifier string) (*domain.TranslationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cache[identifier]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores the record.
func (s *Store) Put(rec domain.TranslationRecord) error {
	s.mu.Lock()
	s.cache[rec.Identifier] = rec
	s.mu.Unlock()

	return s.save()
}

// All returns every record, sorted by identifier.
func (s *Store) All() ([]domain.TranslationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TranslationRecord, 0, len(s.cache))
	for _, rec := range s.cache {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out, nil
}

// Delete removes the record for an artifact identifier.
func (s *Store) Delete(identifier string) error {
	s.mu.Lock()
	delete(s.cache, identifier)
	s.mu.Unlock()

	return s.save()
}
