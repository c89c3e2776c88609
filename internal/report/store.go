package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a finished report under the given file name.
type Store interface {
	Save(name string, data []byte) (string, error)
}

// FileStore writes reports into a directory on the local filesystem.
type FileStore struct {
	BaseDir string
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{BaseDir: baseDir}
}

// Save creates a fresh file (truncating any same-named one) and returns its path.
func (s *FileStore) Save(name string, data []byte) (path string, err error) {
	path = filepath.Join(s.BaseDir, name)

	file, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file %s: %w", path, closeErr)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return path, fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return path, nil
}
