package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoriesFile_MissingFileLoadsEmpty(t *testing.T) {
	f := NewMemoriesFile(filepath.Join(t.TempDir(), "memories.json"))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoriesFile_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runtime", "memories.json")
	f := NewMemoriesFile(path)
	created := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

	in := []core.Memory{
		{ID: 1, Text: `She said "hi"`, CreatedAt: created},
		{ID: 2, Text: "Ünïcode café", CreatedAt: created.Add(time.Hour)},
	}
	require.NoError(t, f.Save(ctx, in))

	got, err := f.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, in[0].Text, got[0].Text)
	assert.Equal(t, in[1].ID, got[1].ID)
	assert.True(t, got[1].CreatedAt.Equal(in[1].CreatedAt))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestMemoriesFile_SaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memories.json")
	f := NewMemoriesFile(path)

	require.NoError(t, f.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMemoriesFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memories.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewMemoriesFile(path).Load(context.Background())
	assert.ErrorContains(t, err, "failed to decode memories file")
}
