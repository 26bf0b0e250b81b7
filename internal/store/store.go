package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandon-m-wang/samplefsys/internal/model"
)

// CorruptStoreError reports a taxonomy file that exists but cannot be used.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt taxonomy file %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// Store owns the in-memory taxonomy and its file. It has exactly one writer
// and is not safe for concurrent use.
type Store struct {
	path string
	tax  *model.Taxonomy
}

// Open loads the taxonomy at path. A missing file is replaced by the default
// empty taxonomy, which is written immediately.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		s.tax = model.NewTaxonomy()
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	tax, err := Decode(data)
	if err != nil {
		return nil, &CorruptStoreError{Path: path, Err: err}
	}
	s.tax = tax
	return s, nil
}

// Decode parses and validates a taxonomy document.
func Decode(data []byte) (*model.Taxonomy, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}
	var tax model.Taxonomy
	if err := json.Unmarshal(data, &tax); err != nil {
		return nil, err
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}
	for _, a := range tax.Artists {
		if a.Songs == nil {
			a.Songs = []model.Song{}
		}
	}
	for i := range tax.Types {
		if tax.Types[i].Subtypes == nil {
			tax.Types[i].Subtypes = []string{}
		}
	}
	return &tax, nil
}

// Encode serializes a taxonomy with 4-space indentation.
func Encode(tax *model.Taxonomy) ([]byte, error) {
	data, err := json.MarshalIndent(tax, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Taxonomy returns the current taxonomy. Callers must treat it as read-only;
// changes go through Update.
func (s *Store) Taxonomy() *model.Taxonomy {
	return s.tax
}

// Update applies fn to a deep copy of the taxonomy, persists the copy and
// then swaps it in. If fn or the write fails, the store is unchanged.
func (s *Store) Update(fn func(tax *model.Taxonomy) error) error {
	next := s.tax.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := write(s.path, next); err != nil {
		return fmt.Errorf("persist taxonomy: %w", err)
	}
	s.tax = next
	return nil
}

// Save writes the current taxonomy to disk.
func (s *Store) Save() error {
	return write(s.path, s.tax)
}

// Reset moves the file at path aside (suffix .corrupt-<unix>) and opens a
// fresh default store in its place. Used to recover from CorruptStoreError.
func Reset(path string, suffix string) (*Store, string, error) {
	backup := path + ".corrupt-" + suffix
	if err := os.Rename(path, backup); err != nil && !os.IsNotExist(err) {
		return nil, "", err
	}
	s, err := Open(path)
	if err != nil {
		return nil, "", err
	}
	return s, backup, nil
}

func write(path string, tax *model.Taxonomy) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := Encode(tax)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
