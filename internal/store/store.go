// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the article snapshot produced by a search.
//
// The snapshot is a single JSON file, overwritten wholesale by each
// search. Record indices are only meaningful within one snapshot;
// concurrent writers race with last-writer-wins semantics, which is
// acceptable for a single-user interactive tool. The write is
// temp-file + rename so a concurrent reader never sees a torn file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantcoder/quantcoder/pkg/types"
)

// ErrNotFound is returned by Get for an index outside the snapshot.
var ErrNotFound = errors.New("article not found")

// Store reads and writes the article snapshot file.
type Store struct {
	path string
}

// New returns a Store backed by the snapshot file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the snapshot with records.
func (s *Store) Save(records []types.ArticleRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".articles-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing snapshot: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp snapshot: %w", closeErr)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming snapshot: %w", err)
	}
	return nil
}

// Load returns the saved snapshot, or an empty slice when none exists.
func (s *Store) Load() ([]types.ArticleRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot %s: %w", s.path, err)
	}

	var records []types.ArticleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", s.path, err)
	}
	return records, nil
}

// Get returns the record at the 1-based index from the last saved
// snapshot. An index outside the snapshot fails with ErrNotFound; Get
// never substitutes a default.
func (s *Store) Get(index int) (types.ArticleRecord, error) {
	records, err := s.Load()
	if err != nil {
		return types.ArticleRecord{}, err
	}
	if index < 1 || index > len(records) {
		return types.ArticleRecord{}, fmt.Errorf("article %d: %w (snapshot has %d entries)", index, ErrNotFound, len(records))
	}
	return records[index-1], nil
}
