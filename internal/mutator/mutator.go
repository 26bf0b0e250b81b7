package mutator

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	ioutils "github.com/brandon-m-wang/samplefsys/internal/io"
	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/brandon-m-wang/samplefsys/internal/store"
)

// Outcome describes a successful mutation.
type Outcome struct {
	// Message is a one-line summary for the user.
	Message string

	// Warnings holds non-fatal problems, such as files that could not be
	// removed after the metadata was deleted.
	Warnings []string
}

// Mutator is the single writer of the taxonomy store.
type Mutator struct {
	store *store.Store
	root  string
}

// New creates a Mutator writing to st. root is the library directory used
// when deletions also remove files.
func New(st *store.Store, root string) *Mutator {
	return &Mutator{store: st, root: root}
}

// ParseBPM parses user input as a BPM in [model.MinBPM, model.MaxBPM].
func ParseBPM(text string) (int, error) {
	text = strings.TrimSpace(text)
	bpm, err := strconv.Atoi(text)
	if err != nil || bpm < model.MinBPM || bpm > model.MaxBPM {
		return 0, &model.InvalidBpmError{Value: text}
	}
	return bpm, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := model.ValidateSegment(name); err != nil {
		return "", err
	}
	return name, nil
}

// CreateType appends a type with no subtypes and selects it.
func (m *Mutator) CreateType(sel *selection.State, name string) (*Outcome, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	err = m.store.Update(func(tax *model.Taxonomy) error {
		if _, ok := tax.FindType(name); ok {
			return &model.DuplicateError{Kind: model.KindType, Name: name}
		}
		tax.Types = append(tax.Types, model.Type{Name: name, Subtypes: []string{}})
		return nil
	})
	if err != nil {
		return nil, err
	}
	*sel = sel.Select(selection.LevelType, name)
	return &Outcome{Message: fmt.Sprintf("Added type: %s", name)}, nil
}

// CreateSubtype appends a subtype to the selected type and selects it.
func (m *Mutator) CreateSubtype(sel *selection.State, name string) (*Outcome, error) {
	if sel.Type == "" {
		return nil, model.ErrNoTypeSelected
	}
	typ := sel.Type
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	err = m.store.Update(func(tax *model.Taxonomy) error {
		tp, ok := tax.FindType(typ)
		if !ok {
			return &model.NotFoundError{Kind: model.KindType, Name: typ}
		}
		if slices.Contains(tp.Subtypes, name) {
			return &model.DuplicateError{Kind: model.KindSubtype, Name: name}
		}
		tp.Subtypes = append(tp.Subtypes, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	*sel = sel.Select(selection.LevelSubtype, name)
	return &Outcome{Message: fmt.Sprintf("Added subtype: %s", name)}, nil
}

// CreateArtist inserts an artist with no songs and selects it.
func (m *Mutator) CreateArtist(sel *selection.State, name string) (*Outcome, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	err = m.store.Update(func(tax *model.Taxonomy) error {
		if _, ok := tax.Artists[name]; ok {
			return &model.DuplicateError{Kind: model.KindArtist, Name: name}
		}
		tax.Artists[name] = &model.Artist{Songs: []model.Song{}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	*sel = sel.Select(selection.LevelArtist, name)
	return &Outcome{Message: fmt.Sprintf("Added artist: %s", name)}, nil
}

// CreateSong appends a song to the selected artist and selects it.
// key is trimmed; bpm must be in range.
func (m *Mutator) CreateSong(sel *selection.State, name string, bpm int, key string) (*Outcome, error) {
	if sel.Artist == "" {
		return nil, model.ErrNoArtistSelected
	}
	artist := sel.Artist
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if bpm < model.MinBPM || bpm > model.MaxBPM {
		return nil, &model.InvalidBpmError{Value: strconv.Itoa(bpm)}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, model.ErrInvalidKey
	}
	err = m.store.Update(func(tax *model.Taxonomy) error {
		a, ok := tax.FindArtist(artist)
		if !ok {
			return &model.NotFoundError{Kind: model.KindArtist, Name: artist}
		}
		for _, s := range a.Songs {
			if s.Name == name {
				return &model.DuplicateError{Kind: model.KindSong, Name: name}
			}
		}
		a.Songs = append(a.Songs, model.Song{Name: name, BPM: bpm, Key: key})
		return nil
	})
	if err != nil {
		return nil, err
	}
	*sel = sel.Select(selection.LevelSong, name)
	return &Outcome{Message: fmt.Sprintf("Added: %s (%d BPM, %s)", name, bpm, key)}, nil
}

// DeleteType removes a type and its subtypes. With alsoDeleteFiles the
// directory root/name is removed too. A selected type clears the whole
// selection path and the sample name.
func (m *Mutator) DeleteType(sel *selection.State, name string, alsoDeleteFiles bool) (*Outcome, error) {
	err := m.store.Update(func(tax *model.Taxonomy) error {
		idx := slices.IndexFunc(tax.Types, func(t model.Type) bool { return t.Name == name })
		if idx < 0 {
			return &model.NotFoundError{Kind: model.KindType, Name: name}
		}
		tax.Types = slices.Delete(tax.Types, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sel.Type == name {
		*sel = sel.Clear(selection.LevelType)
	}
	out := &Outcome{Message: fmt.Sprintf("Deleted type: %s", name)}
	if alsoDeleteFiles {
		m.removeFiles(out, filepath.Join(m.root, name))
	}
	return out, nil
}

// DeleteSubtype removes name from typ. With alsoDeleteFiles the directory
// root/typ/name is removed too. A selected subtype clears subtype and below.
func (m *Mutator) DeleteSubtype(sel *selection.State, typ, name string, alsoDeleteFiles bool) (*Outcome, error) {
	err := m.store.Update(func(tax *model.Taxonomy) error {
		tp, ok := tax.FindType(typ)
		if !ok {
			return &model.NotFoundError{Kind: model.KindType, Name: typ}
		}
		idx := slices.Index(tp.Subtypes, name)
		if idx < 0 {
			return &model.NotFoundError{Kind: model.KindSubtype, Name: name}
		}
		tp.Subtypes = slices.Delete(tp.Subtypes, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sel.Type == typ && sel.Subtype == name {
		*sel = sel.Clear(selection.LevelSubtype)
	}
	out := &Outcome{Message: fmt.Sprintf("Deleted subtype: %s", name)}
	if alsoDeleteFiles {
		m.removeFiles(out, filepath.Join(m.root, typ, name))
	}
	return out, nil
}

// DeleteArtist removes an artist and all of its songs. Only metadata is
// removed; sample files stay on disk. A selected artist clears artist and
// below.
func (m *Mutator) DeleteArtist(sel *selection.State, name string) (*Outcome, error) {
	err := m.store.Update(func(tax *model.Taxonomy) error {
		if _, ok := tax.Artists[name]; !ok {
			return &model.NotFoundError{Kind: model.KindArtist, Name: name}
		}
		delete(tax.Artists, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sel.Artist == name {
		*sel = sel.Clear(selection.LevelArtist)
	}
	return &Outcome{Message: fmt.Sprintf("Deleted artist: %s", name)}, nil
}

// DeleteSong removes a song from artist. With alsoDeleteFiles the directory
// root/artist/name is removed too. A selected song clears the song and the
// sample name.
func (m *Mutator) DeleteSong(sel *selection.State, artist, name string, alsoDeleteFiles bool) (*Outcome, error) {
	err := m.store.Update(func(tax *model.Taxonomy) error {
		a, ok := tax.FindArtist(artist)
		if !ok {
			return &model.NotFoundError{Kind: model.KindArtist, Name: artist}
		}
		idx := slices.IndexFunc(a.Songs, func(s model.Song) bool { return s.Name == name })
		if idx < 0 {
			return &model.NotFoundError{Kind: model.KindSong, Name: name}
		}
		a.Songs = slices.Delete(a.Songs, idx, idx+1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sel.Artist == artist && sel.Song == name {
		*sel = sel.Clear(selection.LevelSong)
	}
	out := &Outcome{Message: fmt.Sprintf("Deleted song: %s", name)}
	if alsoDeleteFiles {
		// songs are removed at root/artist/song, matching the original layout
		m.removeFiles(out, filepath.Join(m.root, artist, name))
	}
	return out, nil
}

func (m *Mutator) removeFiles(out *Outcome, path string) {
	if m.root == "" {
		out.Warnings = append(out.Warnings, "no library root configured, files kept")
		return
	}
	if !within(m.root, path) {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s is outside the library, files kept", path))
		return
	}
	if taxonomy := m.store.Path(); taxonomy != "" && (samePath(path, taxonomy) || within(path, taxonomy)) {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s holds the taxonomy file, files kept", path))
		return
	}
	if err := ioutils.RemoveTree(path); err != nil {
		out.Warnings = append(out.Warnings, fmt.Sprintf("could not remove %s: %v", path, err))
	}
}

// within reports whether path lies strictly below dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(absPath(dir), absPath(path))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func samePath(a, b string) bool {
	return absPath(a) == absPath(b)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
