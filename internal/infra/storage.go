package infra

// storage.go — local-disk asset store for payment method icons.
// Keys are derived from the owning entity id so an asset is addressable
// without a DB lookup. The public URL is served from /assets under the
// configured domain.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AssetStore is the minimal contract the services need. The disk
// implementation below is the production one; tests plug in stubs.
type AssetStore interface {
	// Guardar writes the asset under the given key and returns its public URL.
	Guardar(key string, data []byte) (string, error)
	// Existe reports whether an asset is present for the key.
	Existe(key string) bool
	// Eliminar removes the asset; missing assets are not an error.
	Eliminar(key string) error
	// Listar returns every stored key.
	Listar() ([]string, error)
}

type diskAssetStore struct {
	dir     string
	baseURL string
}

// NewDiskAssetStore creates the storage directory if needed.
func NewDiskAssetStore(dir, domain string) (AssetStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	return &diskAssetStore{
		dir:     dir,
		baseURL: strings.TrimRight(domain, "/") + "/assets/",
	}, nil
}

func (s *diskAssetStore) Guardar(key string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	return s.baseURL + filepath.Base(key), nil
}

func (s *diskAssetStore) Existe(key string) bool {
	_, err := os.Stat(filepath.Join(s.dir, filepath.Base(key)))
	return err == nil
}

func (s *diskAssetStore) Eliminar(key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *diskAssetStore) Listar() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}
