package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestExistingFiles(t *testing.T) {
	root := t.TempDir()

	missing, err := ExistingFiles(filepath.Join(root, "nope"))
	require.NoError(t, err)
	assert.False(t, missing.Exists)
	assert.Equal(t, "Folder does not exist yet", missing.Summary())

	empty := filepath.Join(root, "empty")
	require.NoError(t, os.Mkdir(empty, 0755))
	l, err := ExistingFiles(empty)
	require.NoError(t, err)
	assert.True(t, l.Exists)
	assert.Empty(t, l.Files)
	assert.Equal(t, "No files yet", l.Summary())

	full := filepath.Join(root, "full")
	touch(t, filepath.Join(full, "b.wav"))
	touch(t, filepath.Join(full, "A.wav"))
	touch(t, filepath.Join(full, ".DS_Store"))
	require.NoError(t, os.Mkdir(filepath.Join(full, "sub"), 0755))

	l, err = ExistingFiles(full)
	require.NoError(t, err)
	assert.Equal(t, []string{"A.wav", "b.wav"}, l.Files)
	assert.Equal(t, "2 files", l.Summary())
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	tax := model.NewTaxonomy()
	tax.Types = []model.Type{
		{Name: "Drums", Subtypes: []string{"Loops", "One Shots"}},
		{Name: "Vocals", Subtypes: []string{}},
	}
	tax.Artists["SZA"] = &model.Artist{Songs: []model.Song{{Name: "Kill Bill", BPM: 140, Key: "C# Minor"}}}
	tax.Artists["Frank Ocean"] = &model.Artist{Songs: []model.Song{}}

	touch(t, filepath.Join(root, "Drums", "Loops", "SZA", "Kill Bill", "Loop_snare1.wav"))
	touch(t, filepath.Join(root, "Drums", "Loops", "SZA", "Kill Bill", "Loop_snare2.wav"))

	inv, err := Scan(context.Background(), root, tax, 2)
	require.NoError(t, err)

	require.Len(t, inv.Entries, 2)
	assert.Equal(t, "Loops", inv.Entries[0].Subtype)
	assert.True(t, inv.Entries[0].Exists)
	assert.Len(t, inv.Entries[0].Files, 2)
	assert.Equal(t, "One Shots", inv.Entries[1].Subtype)
	assert.False(t, inv.Entries[1].Exists)
	assert.Equal(t, 2, inv.Total)

	populated := inv.Populated()
	require.Len(t, populated, 1)
	assert.Equal(t, "Kill Bill", populated[0].Song)
}

func TestScan_Cancelled(t *testing.T) {
	tax := model.NewTaxonomy()
	tax.Types = []model.Type{{Name: "Drums", Subtypes: []string{"Loops"}}}
	tax.Artists["SZA"] = &model.Artist{Songs: []model.Song{{Name: "Kill Bill", BPM: 140, Key: "C# Minor"}}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, t.TempDir(), tax, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
