package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/gowvec/internal/search"
	"github.com/knowledge-engine/gowvec/internal/storage"
)

func TestFileStorage(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	doc := &search.Document{
		ID:      "https://example.com/page1",
		Title:   "Example",
		Content: "graph of words",
	}
	require.NoError(t, fs.Save(doc))

	loaded, err := fs.Get("https://example.com/page1")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, loaded.ID)
	assert.Equal(t, doc.Title, loaded.Title)
	assert.Equal(t, doc.Content, loaded.Content)
}

func TestGetNonExistent(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get("https://missing.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, fs.Save(&search.Document{Content: "x"}))
}

func TestListSortedAndSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save(&search.Document{ID: "b", Content: "second"}))
	require.NoError(t, fs.Save(&search.Document{ID: "a", Content: "first"}))
	require.NoError(t, fs.Save(&search.Document{ID: "a", Content: "first again"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

	docs, err := fs.List()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "first again", docs[0].Content)
	assert.Equal(t, "b", docs[1].ID)
}

func TestDistinctIDsDoNotCollide(t *testing.T) {
	fs, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save(&search.Document{ID: "a/b", Content: "slash"}))
	require.NoError(t, fs.Save(&search.Document{ID: "a?b", Content: "question"}))

	docs, err := fs.List()
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
