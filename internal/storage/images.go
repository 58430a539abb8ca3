package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const recipeImageDir = "recipes"

// ImageStore writes uploaded images under a local root directory and
// hands back the public path they are served from. Filenames are fresh
// UUIDs so nothing about the original name leaks into storage; only
// the extension survives.
type ImageStore struct {
	root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{root: root}
}

func (s *ImageStore) SaveRecipeImage(r io.Reader, ext string) (string, error) {
	dir := filepath.Join(s.root, recipeImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return "/uploads/" + recipeImageDir + "/" + name, nil
}

// Remove deletes the file behind a public path previously returned by
// SaveRecipeImage. Unknown paths are ignored.
func (s *ImageStore) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, "/uploads/")
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
