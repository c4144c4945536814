package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv keeps one file per key in a flat directory.
type Diskv struct {
	d    *diskv.Diskv
	base string
}

// NewDiskv roots a Diskv backend at basePath, creating it if needed.
func NewDiskv(basePath string) (*Diskv, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	}), base: basePath}, nil
}

func (s *Diskv) Get(key string) ([]byte, error) {
	b, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("get blob %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}
	return b, nil
}

func (s *Diskv) Put(key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Diskv) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// List returns every key with its file size and modification time.
func (s *Diskv) List() ([]BlobInfo, error) {
	var out []BlobInfo
	for key := range s.d.Keys(nil) {
		fi, err := os.Stat(filepath.Join(s.base, key))
		if err != nil {
			return nil, fmt.Errorf("list blobs: %w", err)
		}
		out = append(out, BlobInfo{Key: key, Size: int(fi.Size()), UpdatedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Close is a no-op; diskv writes are synchronous.
func (s *Diskv) Close() error {
	return nil
}
