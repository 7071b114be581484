package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := fs.Read(ctx, "okimart:cart")
	require.NoError(t, err)
	assert.False(t, ok, "missing key reads as absent, not as an error")

	blob := []byte(`{"carts":{}}`)
	require.NoError(t, fs.Write(ctx, "okimart:cart", blob))

	got, ok, err := fs.Read(ctx, "okimart:cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, blob, got)
}

func TestFileStore_OverwriteReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Write(ctx, "okimart:auth", []byte("first")))
	require.NoError(t, fs.Write(ctx, "okimart:auth", []byte("second")))

	got, ok, err := fs.Read(ctx, "okimart:auth")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), got)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, ".tmp", filepath.Ext(e.Name()))
	}
}

func TestFileStore_KeysMapToSafeFilenames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Write(ctx, "okimart:orders", []byte("x")))
	_, err = os.Stat(filepath.Join(dir, "okimart_orders.json"))
	assert.NoError(t, err)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Write(ctx, "okimart:cart", []byte("persisted")))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, ok, err := reopened.Read(ctx, "okimart:cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
}
