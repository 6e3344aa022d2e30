package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage("http://localhost:8080/", t.TempDir())
	require.NoError(t, err)

	url, err := store.Save(ctx, "abc123.jpg", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/image/machinery/abc123.jpg", url)

	f, err := store.Open("abc123.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "abc123.jpg"))
	_, err = store.Open("abc123.jpg")
	assert.Error(t, err)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete(ctx, "abc123.jpg"))
}

func TestLocalStorage_SanitizesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocalStorage("http://localhost:8080", dir)
	require.NoError(t, err)

	// Path traversal in the key must collapse to the bare filename.
	url, err := store.Save(ctx, "../../etc/passwd.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/image/machinery/passwd.png", url)

	f, err := store.Open("passwd.png")
	require.NoError(t, err)
	f.Close()
}
