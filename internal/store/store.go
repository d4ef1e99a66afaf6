// Package store persists per-component version records.
// Each component directory holds a version.json describing the revision
// its files were downloaded at, with per-file content hashes for drift
// auditing.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seralvarez/compup/internal/digest"
)

// VersionFileName is the record file inside each component directory.
const VersionFileName = "version.json"

// Record is the persisted state of one component.
//
// IdentifierKind tags how Identifier is to be read: "release" means a
// tag name, "commit" means a truncated commit SHA. The two fields are
// always present regardless of tracking mode.
type Record struct {
	IdentifierKind string            `json:"identifier_kind"`
	Identifier     string            `json:"identifier"`
	SourceURL      string            `json:"source_url"`
	LastUpdated    string            `json:"last_updated"`
	Files          []string          `json:"files"`
	FileHashes     map[string]string `json:"file_hashes"`
}

// Store reads and writes version records under a root directory.
// Component directories are direct children of Root, named after the
// component.
type Store struct {
	Root string
}

// Path returns the version file path for a component.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Root, name, VersionFileName)
}

// Read returns the stored record for a component, or nil if none
// exists. A present but unreadable/unparseable record is an error; the
// caller decides whether to treat that as absent.
func (s *Store) Read(name string) (*Record, error) {
	data, err := os.ReadFile(s.Path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version record for %s: %w", name, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing version record for %s: %w", name, err)
	}
	return &rec, nil
}

// Write replaces the component's record. Every file listed in
// rec.Files (paths relative to Root) is hashed as it exists on disk
// right now, so the persisted hashes always describe the bytes this
// update produced. The record file is written atomically via a temp
// file and rename.
func (s *Store) Write(name string, rec *Record) error {
	rec.FileHashes = make(map[string]string, len(rec.Files))
	for _, f := range rec.Files {
		hash, err := digest.File(filepath.Join(s.Root, f))
		if err != nil {
			return fmt.Errorf("hashing %s: %w", f, err)
		}
		rec.FileHashes[f] = hash
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version record for %s: %w", name, err)
	}
	data = append(data, '\n')

	dir := filepath.Join(s.Root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating component directory %s: %w", dir, err)
	}

	path := s.Path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp version record %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp version record to %s: %w", path, err)
	}

	return nil
}
