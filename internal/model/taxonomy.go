package model

import (
	"slices"
	"sort"
	"strings"
)

// BPM bounds accepted for a song.
const (
	MinBPM = 1
	MaxBPM = 400
)

// Taxonomy is the complete persisted catalog.
//
// Types keeps insertion order. Artists is keyed by artist name; the order of
// the songs within an artist is preserved.
//
// Example:
//
//	tax := NewTaxonomy()
//	tax.Types = append(tax.Types, Type{Name: "Drums", Subtypes: []string{"Loops"}})
//	tax.Artists["SZA"] = &Artist{Songs: []Song{{Name: "Kill Bill", BPM: 140, Key: "C# Minor"}}}
type Taxonomy struct {
	// Types is the ordered list of sample types with their subtypes.
	Types []Type `json:"types" yaml:"types"`

	// Artists maps an artist name to its songs.
	Artists map[string]*Artist `json:"artists" yaml:"artists"`
}

// Type is a top-level sample category such as "Drums" or "Vocals".
type Type struct {
	// Name is unique among types (case-sensitive).
	Name string `json:"name" yaml:"name"`

	// Subtypes are unique within the type and never empty.
	Subtypes []string `json:"subtypes" yaml:"subtypes"`
}

// Artist holds the songs filed under one artist.
type Artist struct {
	Songs []Song `json:"songs" yaml:"songs"`
}

// Song is a reference track that samples are taken from.
type Song struct {
	Name string `json:"name" yaml:"name"`
	BPM  int    `json:"bpm" yaml:"bpm"`
	Key  string `json:"key" yaml:"key"`
}

// NewTaxonomy returns the empty default taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		Types:   []Type{},
		Artists: map[string]*Artist{},
	}
}

// Clone returns a deep copy that shares no slices or maps with t.
func (t *Taxonomy) Clone() *Taxonomy {
	c := &Taxonomy{
		Types:   make([]Type, len(t.Types)),
		Artists: make(map[string]*Artist, len(t.Artists)),
	}
	for i, typ := range t.Types {
		c.Types[i] = Type{Name: typ.Name, Subtypes: slices.Clone(typ.Subtypes)}
		if c.Types[i].Subtypes == nil {
			c.Types[i].Subtypes = []string{}
		}
	}
	for name, artist := range t.Artists {
		songs := []Song{}
		if artist != nil {
			songs = append(songs, artist.Songs...)
		}
		c.Artists[name] = &Artist{Songs: songs}
	}
	return c
}

// FindType returns the type with the given name.
func (t *Taxonomy) FindType(name string) (*Type, bool) {
	for i := range t.Types {
		if t.Types[i].Name == name {
			return &t.Types[i], true
		}
	}
	return nil, false
}

// HasSubtype reports whether typ exists and lists subtype.
func (t *Taxonomy) HasSubtype(typ, subtype string) bool {
	tp, ok := t.FindType(typ)
	return ok && slices.Contains(tp.Subtypes, subtype)
}

// FindArtist returns the artist with the given name.
func (t *Taxonomy) FindArtist(name string) (*Artist, bool) {
	a, ok := t.Artists[name]
	if !ok || a == nil {
		return nil, false
	}
	return a, true
}

// FindSong looks up a song by exact artist and song name.
func (t *Taxonomy) FindSong(artist, song string) (Song, bool) {
	a, ok := t.FindArtist(artist)
	if !ok {
		return Song{}, false
	}
	for _, s := range a.Songs {
		if s.Name == song {
			return s, true
		}
	}
	return Song{}, false
}

// TypeNames returns type names in stored order.
func (t *Taxonomy) TypeNames() []string {
	names := make([]string, len(t.Types))
	for i, typ := range t.Types {
		names[i] = typ.Name
	}
	return names
}

// SubtypeNames returns the subtypes of typ, or nil when typ is unknown.
func (t *Taxonomy) SubtypeNames(typ string) []string {
	tp, ok := t.FindType(typ)
	if !ok {
		return nil
	}
	return slices.Clone(tp.Subtypes)
}

// ArtistNames returns artist names sorted case-insensitively.
func (t *Taxonomy) ArtistNames() []string {
	names := make([]string, 0, len(t.Artists))
	for name := range t.Artists {
		names = append(names, name)
	}
	SortFold(names)
	return names
}

// SongNames returns the song names of artist in stored order.
func (t *Taxonomy) SongNames(artist string) []string {
	a, ok := t.FindArtist(artist)
	if !ok {
		return nil
	}
	names := make([]string, len(a.Songs))
	for i, s := range a.Songs {
		names[i] = s.Name
	}
	return names
}

// SortFold sorts names case-insensitively, falling back to a byte-wise
// comparison so the order is total.
func SortFold(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}
