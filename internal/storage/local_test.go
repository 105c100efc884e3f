package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kundenstopper/internal/config"
)

func TestLocalStorage_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewLocalFs(afero.NewMemMapFs())

	info, err := store.Put(ctx, "a.pdf", strings.NewReader("%PDF-1.4"), PutObjectOptions{Size: 8, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, "a.pdf", info.Key)

	ok, err := store.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, got, err := store.Get(ctx, "a.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), got.Size)

	require.NoError(t, store.Delete(ctx, "a.pdf"))

	ok, err = store.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Delete(ctx, "a.pdf"), ErrObjectNotFound)

	_, _, err = store.Get(ctx, "a.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_PutNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	memfs := afero.NewMemMapFs()
	store := NewLocalFs(memfs)

	_, err := store.Put(ctx, "a.pdf", strings.NewReader("first"), PutObjectOptions{})
	require.NoError(t, err)

	_, err = store.Put(ctx, "a.pdf", strings.NewReader("second"), PutObjectOptions{})
	assert.ErrorIs(t, err, ErrObjectExists)

	content, err := afero.ReadFile(memfs, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStorage_PutRemovesPartialFile(t *testing.T) {
	ctx := context.Background()
	memfs := afero.NewMemMapFs()
	store := NewLocalFs(memfs)

	_, err := store.Put(ctx, "a.pdf", failingReader{}, PutObjectOptions{})
	assert.ErrorContains(t, err, "client went away")

	exists, _ := afero.Exists(memfs, "a.pdf")
	assert.False(t, exists)
}

func TestLocalStorage_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	store := NewLocalFs(afero.NewMemMapFs())

	for _, key := range []string{"", ".", "..", "../etc/passwd", "dir/a.pdf"} {
		_, err := store.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{})
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		assert.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey, key)
	}
}

func TestNewLocal(t *testing.T) {
	dir := t.TempDir() + "/uploads"
	store, err := NewLocal(config.LocalStorageConfig{Dir: dir})
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "b.pdf", strings.NewReader("data"), PutObjectOptions{})
	require.NoError(t, err)
	assert.FileExists(t, dir+"/b.pdf")

	_, err = NewLocal(config.LocalStorageConfig{})
	assert.Error(t, err)
}
