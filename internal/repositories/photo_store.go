package repositories

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// PhotoStore is the avatar file directory. Filenames are always generated
// server-side, so no path sanitization happens here.
type PhotoStore interface {
	// Write streams a new file via encode; a failed encode removes the
	// partial file before returning.
	Write(filename string, encode func(io.Writer) error) error
	Remove(filename string) error
	Exists(filename string) bool
	Dir() string
}

type photoStore struct {
	dir string
}

func NewPhotoStore(dir string) (PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating photo directory: %w", err)
	}
	return &photoStore{dir: dir}, nil
}

func (p *photoStore) Write(filename string, encode func(io.Writer) error) error {
	path := filepath.Join(p.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encode(f); err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("Error removing partial photo %s: %v", filename, rmErr)
		}
		return err
	}

	return f.Close()
}

func (p *photoStore) Remove(filename string) error {
	return os.Remove(filepath.Join(p.dir, filename))
}

func (p *photoStore) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(p.dir, filename))
	return err == nil
}

func (p *photoStore) Dir() string {
	return p.dir
}
