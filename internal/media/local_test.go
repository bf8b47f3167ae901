package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	url, err := s.Save(ctx, "team1-m1-123.jpg", []byte("photo"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/team1-m1-123.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "team1-m1-123.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("photo"), data)
}

func TestLocalStoreSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "uploads")
	s := NewLocalStore(dir)

	_, err := s.Save(context.Background(), "a.jpg", []byte("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "a.jpg"))
	assert.NoError(t, err)
}

func TestLocalStoreDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	url, err := s.Save(ctx, "a.jpg", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "a.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteIgnoresForeignURLs(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.jpg", []byte("x"))
	require.NoError(t, err)

	// Remote URLs and missing files are both quietly skipped
	assert.NoError(t, s.Delete(ctx, "https://cdn.example.com/media/a.jpg"))
	assert.NoError(t, s.Delete(ctx, "/uploads/never-existed.jpg"))

	_, err = os.Stat(filepath.Join(dir, "a.jpg"))
	assert.NoError(t, err)
}

func TestLocalStoreDeleteStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	require.NoError(t, s.Delete(ctx, "/uploads/../victim.txt"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestLocalStoreOpen(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStore(dir)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.jpg", []byte("photo"))
	require.NoError(t, err)

	opener, ok := s.(Opener)
	require.True(t, ok)

	rc, err := opener.Open(ctx, "a.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("photo"), data)
}
