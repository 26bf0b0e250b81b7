package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy() *Taxonomy {
	tax := NewTaxonomy()
	tax.Types = []Type{
		{Name: "Drums", Subtypes: []string{"Loops", "One Shots"}},
		{Name: "Vocals", Subtypes: []string{}},
	}
	tax.Artists["SZA"] = &Artist{Songs: []Song{
		{Name: "Kill Bill", BPM: 140, Key: "C# Minor"},
		{Name: "Snooze", BPM: 143, Key: "A Major"},
	}}
	tax.Artists["aphex twin"] = &Artist{Songs: []Song{}}
	return tax
}

func TestValidateSegment(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"Kill Bill", nil},
		{"C# Minor", nil},
		{"R&B", nil},
		{"", ErrEmptyName},
		{"   ", ErrEmptyName},
		{"AC/DC", ErrInvalidName},
		{`back\slash`, ErrInvalidName},
		{"what?", ErrInvalidName},
		{"a:b", ErrInvalidName},
		{"tab\tname", ErrInvalidName},
		{".", ErrInvalidName},
		{"..", ErrInvalidName},
		{" padded", ErrInvalidName},
		{"trailing.", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateSegment(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSanitizeSegment(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal name", "normal name"},
		{"Song: Part 1/2", "Song_ Part 1_2"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeSegment(tt.input)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, ValidateSegment(got))
		})
	}
}

func TestTaxonomy_Lookups(t *testing.T) {
	tax := testTaxonomy()

	assert.True(t, tax.HasSubtype("Drums", "Loops"))
	assert.False(t, tax.HasSubtype("Drums", "loops"), "lookups are case-sensitive")
	assert.False(t, tax.HasSubtype("Keys", "Loops"))

	song, ok := tax.FindSong("SZA", "Kill Bill")
	require.True(t, ok)
	assert.Equal(t, 140, song.BPM)
	assert.Equal(t, "C# Minor", song.Key)

	_, ok = tax.FindSong("SZA", "Good Days")
	assert.False(t, ok)

	assert.Equal(t, []string{"aphex twin", "SZA"}, tax.ArtistNames())
	assert.Equal(t, []string{"Kill Bill", "Snooze"}, tax.SongNames("SZA"))
	assert.Nil(t, tax.SubtypeNames("Keys"))
}

func TestTaxonomy_CloneIsDeep(t *testing.T) {
	tax := testTaxonomy()
	c := tax.Clone()

	c.Types[0].Subtypes[0] = "changed"
	c.Artists["SZA"].Songs[0].BPM = 1
	delete(c.Artists, "aphex twin")

	assert.Equal(t, "Loops", tax.Types[0].Subtypes[0])
	assert.Equal(t, 140, tax.Artists["SZA"].Songs[0].BPM)
	assert.Contains(t, tax.Artists, "aphex twin")
}

func TestTaxonomy_Validate(t *testing.T) {
	require.NoError(t, testTaxonomy().Validate())
	require.NoError(t, NewTaxonomy().Validate())

	tests := []struct {
		name   string
		mutate func(*Taxonomy)
		is     error
	}{
		{"duplicate type", func(tx *Taxonomy) { tx.Types = append(tx.Types, Type{Name: "Drums"}) }, ErrDuplicate},
		{"duplicate subtype", func(tx *Taxonomy) { tx.Types[0].Subtypes = append(tx.Types[0].Subtypes, "Loops") }, ErrDuplicate},
		{"duplicate song", func(tx *Taxonomy) {
			tx.Artists["SZA"].Songs = append(tx.Artists["SZA"].Songs, Song{Name: "Snooze", BPM: 90, Key: "A"})
		}, ErrDuplicate},
		{"bpm out of range", func(tx *Taxonomy) { tx.Artists["SZA"].Songs[0].BPM = 401 }, ErrInvalidBpm},
		{"zero bpm", func(tx *Taxonomy) { tx.Artists["SZA"].Songs[0].BPM = 0 }, ErrInvalidBpm},
		{"empty key", func(tx *Taxonomy) { tx.Artists["SZA"].Songs[1].Key = " " }, ErrInvalidKey},
		{"empty subtype", func(tx *Taxonomy) { tx.Types[1].Subtypes = []string{""} }, nil},
		{"parent dir type", func(tx *Taxonomy) { tx.Types[0].Name = ".." }, ErrInvalidName},
		{"separator in subtype", func(tx *Taxonomy) { tx.Types[0].Subtypes[0] = "a/b" }, ErrInvalidName},
		{"reserved char in artist", func(tx *Taxonomy) { tx.Artists["x:"] = &Artist{Songs: []Song{}} }, ErrInvalidName},
		{"padded song", func(tx *Taxonomy) { tx.Artists["SZA"].Songs[0].Name = " Kill Bill" }, ErrInvalidName},
		{"null artist", func(tx *Taxonomy) { tx.Artists["ghost"] = nil }, nil},
		{"missing types", func(tx *Taxonomy) { tx.Types = nil }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := testTaxonomy()
			tt.mutate(tax)
			err := tax.Validate()
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}

func TestSortFold(t *testing.T) {
	names := []string{"beta", "Alpha", "alpha", "Gamma"}
	SortFold(names)
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "Gamma"}, names)
}
