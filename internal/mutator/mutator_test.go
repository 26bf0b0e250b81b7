package mutator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/brandon-m-wang/samplefsys/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMutator(t *testing.T) (*Mutator, *store.Store, string) {
	t.Helper()
	root := t.TempDir()
	st, err := store.Open(filepath.Join(root, "config.json"))
	require.NoError(t, err)
	return New(st, root), st, root
}

// reload reads the taxonomy back from disk to prove it was persisted.
func reload(t *testing.T, st *store.Store) *model.Taxonomy {
	t.Helper()
	again, err := store.Open(st.Path())
	require.NoError(t, err)
	return again.Taxonomy()
}

// seed builds Drums/Loops and SZA/Kill Bill and selects all four levels.
func seed(t *testing.T, m *Mutator) selection.State {
	t.Helper()
	sel := selection.New(selection.DefaultToggles())
	_, err := m.CreateType(&sel, "Drums")
	require.NoError(t, err)
	_, err = m.CreateSubtype(&sel, "Loops")
	require.NoError(t, err)
	_, err = m.CreateArtist(&sel, "SZA")
	require.NoError(t, err)
	_, err = m.CreateSong(&sel, "Kill Bill", 140, "C# Minor")
	require.NoError(t, err)
	return sel.WithSampleName("snare1").WithSource("/tmp/snare.wav")
}

func TestCreate_SelectsAndPersists(t *testing.T) {
	m, st, _ := newMutator(t)
	sel := seed(t, m)

	assert.Equal(t, "Drums", sel.Type)
	assert.Equal(t, "Loops", sel.Subtype)
	assert.Equal(t, "SZA", sel.Artist)
	assert.Equal(t, "Kill Bill", sel.Song)

	tax := reload(t, st)
	assert.Equal(t, []string{"Drums"}, tax.TypeNames())
	assert.Equal(t, []string{"Loops"}, tax.SubtypeNames("Drums"))
	song, ok := tax.FindSong("SZA", "Kill Bill")
	require.True(t, ok)
	assert.Equal(t, model.Song{Name: "Kill Bill", BPM: 140, Key: "C# Minor"}, song)
}

func TestCreateType_ClearsDescendants(t *testing.T) {
	m, _, _ := newMutator(t)
	sel := seed(t, m)

	out, err := m.CreateType(&sel, "Vocals")
	require.NoError(t, err)
	assert.Equal(t, "Added type: Vocals", out.Message)
	assert.Equal(t, "Vocals", sel.Type)
	assert.Empty(t, sel.Subtype)
	assert.Empty(t, sel.Artist)
	assert.Empty(t, sel.Song)
	assert.Empty(t, sel.SampleName)
	assert.Equal(t, "/tmp/snare.wav", sel.SourceFile)
	assert.False(t, sel.Ready())
}

func TestCreate_NameValidation(t *testing.T) {
	m, st, _ := newMutator(t)
	sel := seed(t, m)
	before := sel

	tests := []struct {
		name    string
		create  func() error
		wantErr error
	}{
		{"empty type", func() error { _, err := m.CreateType(&sel, "   "); return err }, model.ErrEmptyName},
		{"reserved type", func() error { _, err := m.CreateType(&sel, "a/b"); return err }, model.ErrInvalidName},
		{"duplicate type", func() error { _, err := m.CreateType(&sel, "Drums"); return err }, model.ErrDuplicate},
		{"duplicate subtype", func() error { _, err := m.CreateSubtype(&sel, "Loops"); return err }, model.ErrDuplicate},
		{"reserved subtype", func() error { _, err := m.CreateSubtype(&sel, "x:y"); return err }, model.ErrInvalidName},
		{"duplicate artist", func() error { _, err := m.CreateArtist(&sel, "SZA"); return err }, model.ErrDuplicate},
		{"dot artist", func() error { _, err := m.CreateArtist(&sel, ".."); return err }, model.ErrInvalidName},
		{"duplicate song", func() error { _, err := m.CreateSong(&sel, "Kill Bill", 100, "A"); return err }, model.ErrDuplicate},
		{"empty song", func() error { _, err := m.CreateSong(&sel, "", 100, "A"); return err }, model.ErrEmptyName},
		{"empty key", func() error { _, err := m.CreateSong(&sel, "Snooze", 100, "  "); return err }, model.ErrInvalidKey},
		{"bpm zero", func() error { _, err := m.CreateSong(&sel, "Snooze", 0, "A"); return err }, model.ErrInvalidBpm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.create(), tt.wantErr)
			assert.Equal(t, before, sel, "selection must be untouched")
		})
	}

	tax := reload(t, st)
	assert.Equal(t, []string{"Drums"}, tax.TypeNames())
	assert.Equal(t, []string{"SZA"}, tax.ArtistNames())
	assert.Equal(t, []string{"Kill Bill"}, tax.SongNames("SZA"))
}

func TestCreateSong_BPMOutOfRangeLeavesCountUnchanged(t *testing.T) {
	m, st, _ := newMutator(t)
	sel := seed(t, m)

	_, err := m.CreateSong(&sel, "Snooze", 450, "A Minor")
	var bpmErr *model.InvalidBpmError
	require.True(t, errors.As(err, &bpmErr), "got %v", err)
	assert.Equal(t, "450", bpmErr.Value)

	assert.Len(t, st.Taxonomy().SongNames("SZA"), 1)
	assert.Len(t, reload(t, st).SongNames("SZA"), 1)
}

func TestCreate_RequiresParentSelection(t *testing.T) {
	m, _, _ := newMutator(t)
	sel := selection.New(selection.DefaultToggles())

	_, err := m.CreateSubtype(&sel, "Loops")
	assert.ErrorIs(t, err, model.ErrNoTypeSelected)

	_, err = m.CreateSong(&sel, "Kill Bill", 140, "C# Minor")
	assert.ErrorIs(t, err, model.ErrNoArtistSelected)
}

func TestParseBPM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"140", 140, false},
		{" 92 ", 92, false},
		{"1", 1, false},
		{"400", 400, false},
		{"0", 0, true},
		{"401", 0, true},
		{"450", 0, true},
		{"-5", 0, true},
		{"12.5", 0, true},
		{"fast", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBPM(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidBpm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeleteArtist_Selected(t *testing.T) {
	m, st, _ := newMutator(t)
	sel := seed(t, m)

	out, err := m.DeleteArtist(&sel, "SZA")
	require.NoError(t, err)
	assert.Equal(t, "Deleted artist: SZA", out.Message)

	assert.Equal(t, "Drums", sel.Type)
	assert.Equal(t, "Loops", sel.Subtype)
	assert.Empty(t, sel.Artist)
	assert.Empty(t, sel.Song)
	assert.Empty(t, sel.SampleName)
	assert.False(t, sel.Ready())

	_, ok := reload(t, st).FindArtist("SZA")
	assert.False(t, ok)
}

func TestDeleteArtist_NotSelected(t *testing.T) {
	m, _, _ := newMutator(t)
	sel := seed(t, m)

	other := selection.New(selection.DefaultToggles())
	_, err := m.CreateArtist(&other, "Frank Ocean")
	require.NoError(t, err)

	before := sel
	_, err = m.DeleteArtist(&sel, "Frank Ocean")
	require.NoError(t, err)
	assert.Equal(t, before, sel)
}

func TestDeleteType_ClearsPathKeepsSource(t *testing.T) {
	m, st, root := newMutator(t)
	sel := seed(t, m)

	dir := filepath.Join(root, "Drums", "Loops", "SZA", "Kill Bill")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.wav"), []byte("a"), 0644))

	out, err := m.DeleteType(&sel, "Drums", false)
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, selection.New(sel.Toggles).WithSource("/tmp/snare.wav"), sel)
	assert.Empty(t, reload(t, st).TypeNames())

	_, err = os.Stat(dir)
	assert.NoError(t, err, "files are kept unless asked")

	_, err = m.DeleteType(&sel, "Drums", true)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteType_AlsoDeleteFiles(t *testing.T) {
	m, _, root := newMutator(t)
	sel := seed(t, m)

	dir := filepath.Join(root, "Drums", "Loops")
	require.NoError(t, os.MkdirAll(dir, 0755))

	_, err := m.DeleteType(&sel, "Drums", true)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "Drums"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "config.json"))
	assert.NoError(t, err)
}

func TestDeleteSubtype(t *testing.T) {
	m, st, root := newMutator(t)
	sel := seed(t, m)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Drums", "Loops"), 0755))

	_, err := m.DeleteSubtype(&sel, "Drums", "Missing", false)
	assert.ErrorIs(t, err, model.ErrNotFound)

	out, err := m.DeleteSubtype(&sel, "Drums", "Loops", true)
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, "Drums", sel.Type)
	assert.Empty(t, sel.Subtype)
	assert.Empty(t, sel.Artist)
	assert.Empty(t, sel.Song)

	assert.Empty(t, reload(t, st).SubtypeNames("Drums"))
	_, err = os.Stat(filepath.Join(root, "Drums", "Loops"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteSong(t *testing.T) {
	m, st, root := newMutator(t)
	sel := seed(t, m)

	songDir := filepath.Join(root, "SZA", "Kill Bill")
	require.NoError(t, os.MkdirAll(songDir, 0755))

	out, err := m.DeleteSong(&sel, "SZA", "Kill Bill", true)
	require.NoError(t, err)
	assert.Equal(t, "Deleted song: Kill Bill", out.Message)
	assert.Equal(t, "SZA", sel.Artist)
	assert.Empty(t, sel.Song)
	assert.Empty(t, sel.SampleName)

	assert.Empty(t, reload(t, st).SongNames("SZA"))
	_, err = os.Stat(songDir)
	assert.True(t, os.IsNotExist(err))

	_, err = m.DeleteSong(&sel, "SZA", "Kill Bill", false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete_MissingFilesAreFine(t *testing.T) {
	m, _, _ := newMutator(t)
	sel := seed(t, m)

	out, err := m.DeleteSong(&sel, "SZA", "Kill Bill", true)
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
}

func TestDeleteType_NeverRemovesOutsideRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "lib")
	precious := filepath.Join(base, "precious.txt")
	require.NoError(t, os.WriteFile(precious, []byte("keep"), 0644))

	st, err := store.Open(filepath.Join(root, "config.json"))
	require.NoError(t, err)
	// Update skips the load-time checks, so an unsafe name can still reach the mutator
	require.NoError(t, st.Update(func(tax *model.Taxonomy) error {
		tax.Types = append(tax.Types, model.Type{Name: "..", Subtypes: []string{}})
		return nil
	}))
	m := New(st, root)
	sel := selection.New(selection.DefaultToggles())

	out, err := m.DeleteType(&sel, "..", true)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "outside the library")
	assert.FileExists(t, precious)
	assert.DirExists(t, root)
}

func TestDelete_KeepsTaxonomyFile(t *testing.T) {
	m, st, root := newMutator(t)
	sel := seed(t, m)
	_, err := m.CreateType(&sel, "config.json")
	require.NoError(t, err)

	out, err := m.DeleteType(&sel, "config.json", true)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "taxonomy file")

	assert.FileExists(t, filepath.Join(root, "config.json"))
	assert.Equal(t, []string{"Drums"}, reload(t, st).TypeNames())
}

func TestWithin(t *testing.T) {
	root := filepath.Join(t.TempDir(), "lib")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "Drums"), true},
		{filepath.Join(root, "Drums", "Loops"), true},
		{root, false},
		{filepath.Join(root, ".."), false},
		{filepath.Join(root, "..", "other"), false},
		{filepath.Join(root, "..lib"), true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, within(root, tt.path))
		})
	}
}
