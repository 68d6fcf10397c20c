package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowe/exhume/internal/catalog"
	"github.com/marlowe/exhume/internal/pipeline"
)

// End-to-end: real SQLite catalog as every collaborator.
func TestEngineAgainstSQLiteCatalog(t *testing.T) {
	ctx := context.Background()
	tmp := t.TempDir()

	store, err := catalog.Open(filepath.Join(tmp, "catalog.db"))
	require.NoError(t, err)
	defer store.Close()

	entries := []catalog.Entry{
		{ID: 1, Name: "passwords.txt", Kind: catalog.KindFile},
		{ID: 50, Name: "stash", Kind: catalog.KindDirectory},
		{ID: 51, Name: "inner", Kind: catalog.KindDirectory, ParentID: 50},
		{ID: 52, Name: "secret.bin", Kind: catalog.KindFile, ParentID: 51},
		{ID: 53, Name: "list.txt", Kind: catalog.KindFile, ParentID: 50},
	}
	for _, e := range entries {
		require.NoError(t, store.InsertEntry(ctx, e))
	}
	require.NoError(t, store.AttachContent(ctx, 1, []byte("hunter2")))
	require.NoError(t, store.AttachContent(ctx, 52, []byte{0x01, 0x02}))
	require.NoError(t, store.AttachContent(ctx, 53, []byte("a\nb\n")))
	require.NoError(t, store.FlagInteresting(ctx, 1, "Credentials"))
	require.NoError(t, store.FlagInteresting(ctx, 50, "HiddenDirs"))

	out := filepath.Join(tmp, "out")
	engine := New(store, store, store, nil)
	engine.Configure(out)
	require.Equal(t, pipeline.StatusOK, engine.Run(ctx))

	data, err := os.ReadFile(filepath.Join(out, "Credentials", "1_passwords.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(data))

	stash := filepath.Join(out, "HiddenDirs", "50_stash", "stash")
	data, err = os.ReadFile(filepath.Join(stash, "inner", "secret.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, data)

	data, err = os.ReadFile(filepath.Join(stash, "list.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}
