package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRecipeImage(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	path, err := store.SaveRecipeImage(strings.NewReader("image bytes"), ".jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/recipes/"), path)
	assert.True(t, strings.HasSuffix(path, ".jpg"), path)

	onDisk := filepath.Join(root, "recipes", filepath.Base(path))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestSaveRecipeImageNamesAreUnique(t *testing.T) {
	store := NewImageStore(t.TempDir())

	first, err := store.SaveRecipeImage(strings.NewReader("a"), ".png")
	require.NoError(t, err)
	second, err := store.SaveRecipeImage(strings.NewReader("a"), ".png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "identical content still gets distinct names")
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	path, err := store.SaveRecipeImage(strings.NewReader("bytes"), ".jpg")
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(filepath.Join(root, "recipes", filepath.Base(path)))
	assert.True(t, os.IsNotExist(err))

	// Removing twice or removing a foreign path is not an error.
	assert.NoError(t, store.Remove(path))
	assert.NoError(t, store.Remove("/somewhere/else.jpg"))
}
