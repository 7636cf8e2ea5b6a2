package anew

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	storeDirName     = ".anew"
	templatesDirName = "templates"
)

// DefaultStoreDir returns <home>/.anew/templates.
func DefaultStoreDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, storeDirName, templatesDirName), nil
}

// Store is the directory holding one subdirectory per template.
type Store struct {
	Dir    string
	logger *slog.Logger
}

// LocateStore returns the store rooted at dir, creating it if needed. An
// empty dir selects DefaultStoreDir.
func LocateStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir == "" {
		d, err := DefaultStoreDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create template store %s: %w", dir, err)
		}
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("template store is not a directory, recreating", "dir", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return &Store{Dir: dir, logger: logger}, nil
}

// ValidateName accepts only names usable as a single directory entry.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name), nil
}

// Exists reports whether anything, a dangling link included, occupies name.
func (s *Store) Exists(name string) bool {
	p, err := s.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Lstat(p)
	return err == nil
}
