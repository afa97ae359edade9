package bitplane

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// FileExt is appended to plane names by Store
const FileExt = ".bitplane"

// Store saves and loads named occupancy planes under a base directory
type Store struct {
	basePath string
}

// NewStore creates a store rooted at basePath
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// FilePath returns the path for a named plane
func (s *Store) FilePath(name string) string {
	return filepath.Join(s.basePath, name+FileExt)
}

// Exists checks if a named plane has been saved
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.FilePath(name))
	return err == nil
}

// Save writes the plane to disk, creating the base directory if needed
func (s *Store) Save(name string, p *Plane) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return errors.Wrapf(err, "create plane dir %s", s.basePath)
	}

	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "encode plane")
	}

	if err := os.WriteFile(s.FilePath(name), buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "save plane %q", name)
	}
	return nil
}

// Load reads a named plane of side dim
func (s *Store) Load(name string, dim int) (*Plane, error) {
	data, err := os.ReadFile(s.FilePath(name))
	if err != nil {
		return nil, errors.Wrapf(err, "load plane %q", name)
	}

	p, err := Decode(dim, data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode plane %q", name)
	}
	return p, nil
}

// LoadInto reads a named plane over an existing one, keeping its dimension
func (s *Store) LoadInto(name string, p *Plane) error {
	f, err := os.Open(s.FilePath(name))
	if err != nil {
		return errors.Wrapf(err, "load plane %q", name)
	}
	defer f.Close()

	tmp := p.Clone()
	if _, err := tmp.ReadFrom(f); err != nil {
		return errors.Wrapf(err, "decode plane %q", name)
	}
	return p.CopyFrom(tmp)
}

// List returns the names of saved planes in sorted order
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "list planes in %s", s.basePath)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), FileExt))
	}
	sort.Strings(names)
	return names, nil
}
