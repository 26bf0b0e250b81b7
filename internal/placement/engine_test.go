package placement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/brandon-m-wang/samplefsys/internal/audio"
	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy() *model.Taxonomy {
	tax := model.NewTaxonomy()
	tax.Types = []model.Type{{Name: "Drums", Subtypes: []string{"Loops"}}}
	tax.Artists["SZA"] = &model.Artist{Songs: []model.Song{{Name: "Kill Bill", BPM: 140, Key: "C# Minor"}}}
	return tax
}

func setup(t *testing.T, srcName, content string) (string, selection.State) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "incoming", srcName)
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))

	sel := selection.State{
		Type:       "Drums",
		Subtype:    "Loops",
		Artist:     "SZA",
		Song:       "Kill Bill",
		SampleName: "snare1",
		Toggles:    selection.NamingToggles{PrefixArtist: true, PrefixSong: true, SuffixOG: true},
		SourceFile: src,
	}
	return filepath.Join(dir, "library"), sel
}

func TestPlace_CopiesIntoTaxonomyPath(t *testing.T) {
	root, sel := setup(t, "snare.wav", "snare-bytes")
	engine := NewEngine(root)

	res, err := engine.Place(context.Background(), sel, testTaxonomy())
	require.NoError(t, err)

	wantDir := filepath.Join(root, "Drums", "Loops", "SZA", "Kill Bill")
	assert.Equal(t, wantDir, res.Dir)
	assert.Equal(t, "Loop_SZA_Kill_Bill_snare1_og.wav", res.FileName)
	assert.Equal(t, filepath.Join(wantDir, res.FileName), res.Path)
	assert.Equal(t, int64(len("snare-bytes")), res.Bytes)
	assert.Empty(t, res.Warnings)

	got, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "snare-bytes", string(got))

	src, err := os.ReadFile(sel.SourceFile)
	require.NoError(t, err)
	assert.Equal(t, "snare-bytes", string(src), "source must be untouched")
}

func TestPlace_SecondCallReportsExistingAndKeepsFile(t *testing.T) {
	root, sel := setup(t, "snare.wav", "first")
	engine := NewEngine(root)
	tax := testTaxonomy()

	res, err := engine.Place(context.Background(), sel, tax)
	require.NoError(t, err)
	before, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(sel.SourceFile, []byte("second"), 0644))
	_, err = engine.Place(context.Background(), sel, tax)

	var exists *DestinationExistsError
	require.True(t, errors.As(err, &exists), "got %v", err)
	assert.Equal(t, res.Path, exists.Path)
	assert.ErrorIs(t, err, model.ErrDestinationExists)

	after, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPlace_RejectsIncompleteSelection(t *testing.T) {
	root, full := setup(t, "snare.wav", "x")
	engine := NewEngine(root)

	tests := []struct {
		name string
		sel  selection.State
	}{
		{"no type", full.Clear(selection.LevelType).WithSampleName("snare1")},
		{"no subtype", func() selection.State { s := full; s.Subtype = ""; return s }()},
		{"no artist", func() selection.State { s := full; s.Artist = ""; return s }()},
		{"no song", func() selection.State { s := full; s.Song = ""; return s }()},
		{"no name", full.WithSampleName("  ")},
		{"no file", full.ClearSource()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Place(context.Background(), tt.sel, testTaxonomy())
			require.ErrorIs(t, err, ErrNotReady)
			_, statErr := os.Stat(root)
			assert.True(t, os.IsNotExist(statErr), "nothing may be created")
		})
	}
}

func TestPlace_RejectsSeparatorInName(t *testing.T) {
	root, sel := setup(t, "snare.wav", "x")
	sel.SampleName = "../escape"

	_, err := NewEngine(root).Place(context.Background(), sel, testTaxonomy())
	require.ErrorIs(t, err, model.ErrInvalidName)

	entries, err := os.ReadDir(filepath.Join(root, "Drums", "Loops", "SZA"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kill Bill", entries[0].Name())
}

func TestPlace_MissingSourceFails(t *testing.T) {
	root, sel := setup(t, "snare.wav", "x")
	sel.SourceFile = filepath.Join(filepath.Dir(sel.SourceFile), "gone.wav")

	_, err := NewEngine(root).Place(context.Background(), sel, testTaxonomy())
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrDestinationExists))

	entries, err := os.ReadDir(filepath.Join(root, "Drums", "Loops", "SZA", "Kill Bill"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlace_ReportsProgress(t *testing.T) {
	root, sel := setup(t, "snare.wav", "12345")
	var written, total int64
	engine := NewEngine(root, WithProgress(func(w, tot int64) { written, total = w, tot }))

	_, err := engine.Place(context.Background(), sel, testTaxonomy())
	require.NoError(t, err)
	assert.Equal(t, int64(5), written)
	assert.Equal(t, int64(5), total)
}

func TestPlace_TagsMP3Copy(t *testing.T) {
	root, sel := setup(t, "vox.mp3", string([]byte{0xFF, 0xFB, 0x90, 0x64, 0, 0, 0, 0}))
	sel.Toggles = selection.NamingToggles{}
	engine := NewEngine(root, WithTagger(audio.NewTagger(nil)))

	res, err := engine.Place(context.Background(), sel, testTaxonomy())
	require.NoError(t, err)
	assert.Equal(t, "Loop_snare1.mp3", res.FileName)

	tag, err := id3v2.Open(res.Path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Equal(t, "SZA", tag.Artist())
	assert.Equal(t, "140", tag.GetTextFrame("TBPM").Text)

	src, err := os.ReadFile(sel.SourceFile)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFB, 0x90, 0x64, 0, 0, 0, 0}, src, "only the copy is tagged")
}

func TestTargetDir(t *testing.T) {
	e := NewEngine("/lib")
	_, sel := setup(t, "a.wav", "")
	assert.Equal(t, filepath.Join("/lib", "Drums", "Loops", "SZA", "Kill Bill"), e.TargetDir(sel))
	assert.Empty(t, e.TargetDir(sel.Clear(selection.LevelSong)))
}
