package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lixenwraith/mazegen/maze"
)

// DefaultFileName is where the file backend keeps its snapshot
const DefaultFileName = "maze.bin"

// FileStore keeps a single snapshot in a local file
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save writes through a temp file in the same directory, then renames it
// over the snapshot
func (s *FileStore) Save(ctx context.Context, g *maze.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(Encode(g)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, g *maze.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", s.path, ErrNoSnapshot)
		}
		return fmt.Errorf("load %s: %w", s.path, err)
	}
	if err := Decode(data, g); err != nil {
		return fmt.Errorf("load %s: %w", s.path, err)
	}
	return nil
}
