// Package logos reads company logos from the upload directory.
package logos

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrLogoNotFound = errors.New("logo not found")

// Store serves logo bytes from a directory on disk.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Read returns the bytes of the stored logo. An empty name, a missing file
// or a name that escapes the directory all yield ErrLogoNotFound.
func (s *Store) Read(filename string) ([]byte, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return nil, ErrLogoNotFound
	}
	// Stored paths may carry the upload dir prefix ("uploads/logo.png").
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return nil, ErrLogoNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrLogoNotFound
		}
		return nil, fmt.Errorf("read logo: %w", err)
	}
	return data, nil
}
