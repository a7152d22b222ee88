package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.AutomatonStore over a directory with one
// "<name>.yaml" file per automaton.
type Store struct {
	dir  string
	opts []DecodeOption
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string, opts ...DecodeOption) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir, opts: opts}, nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", &domain.ValidationError{Key: "name", Reason: "must be a plain file name", Value: name}
	}
	return filepath.Join(s.dir, name+".yaml"), nil
}

// Save writes a to "<dir>/<name>.yaml".
func (s *Store) Save(ctx context.Context, name string, a *domain.Automaton) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, name, a); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write automaton: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load reads the automaton stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrAutomatonNotFound
	}
	def, err := ReadOne(path, "", s.opts...)
	if err != nil {
		return nil, err
	}
	return def.Automaton, nil
}

// Delete removes the file of name.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete automaton: %w", err)
	}
	return nil
}

// List returns the names of the YAML files in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list automata: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}
