package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadAndExists(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, strings.NewReader("fake-jpeg-bytes"), "attendance/user-1/proof.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("attendance/user-1/proof.jpg"), path)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := os.ReadFile(filepath.Join(s.basePath, path))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(data))
}

func TestLocalStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, strings.NewReader("x"), "attendance/user-1/proof.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, path))

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is a no-op.
	assert.NoError(t, s.Delete(ctx, path))
}

func TestLocalStorage_URLRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	url, err := s.GetURL(ctx, "attendance/user-1/proof.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/attendance/user-1/proof.jpg", url)

	path, err := s.PathForURL(url)
	require.NoError(t, err)
	assert.Equal(t, "attendance/user-1/proof.jpg", path)

	_, err = s.PathForURL("https://elsewhere.example/other.jpg")
	assert.Error(t, err)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.Error(t, err)
}
