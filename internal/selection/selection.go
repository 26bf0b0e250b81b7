// Package selection models the user's current path through the taxonomy as
// a plain value with pure transition functions.
//
// The four levels form two independent cascades (type -> subtype and
// artist -> song) presented in one order. Changing a level clears every
// level after it and the sample name:
//
//	sel := selection.New(selection.DefaultToggles())
//	sel = sel.Select(selection.LevelType, "Drums")
//	sel = sel.Select(selection.LevelSubtype, "Loops")
//	sel = sel.Select(selection.LevelType, "Vocals") // subtype, artist, song, name cleared
package selection

import (
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/model"
)

// Level is a position in the selection path.
type Level int

const (
	LevelType Level = iota + 1
	LevelSubtype
	LevelArtist
	LevelSong
)

// Levels lists the four levels in presentation order.
var Levels = []Level{LevelType, LevelSubtype, LevelArtist, LevelSong}

func (l Level) String() string {
	switch l {
	case LevelType:
		return "type"
	case LevelSubtype:
		return "subtype"
	case LevelArtist:
		return "artist"
	case LevelSong:
		return "song"
	}
	return "unknown"
}

// Kind maps the level to the taxonomy kind used in errors.
func (l Level) Kind() model.Kind {
	return model.Kind(l.String())
}

// Toggle identifies one naming rule.
type Toggle int

const (
	PrefixArtist Toggle = iota
	PrefixSong
	PrefixBPM
	PrefixKey
	SuffixOG
)

// Toggles lists the naming rules in display order.
var Toggles = []Toggle{PrefixArtist, PrefixSong, PrefixBPM, PrefixKey, SuffixOG}

func (t Toggle) String() string {
	switch t {
	case PrefixArtist:
		return "prefix artist"
	case PrefixSong:
		return "prefix song"
	case PrefixBPM:
		return "prefix BPM"
	case PrefixKey:
		return "prefix key"
	case SuffixOG:
		return "suffix _og"
	}
	return "unknown"
}

// NamingToggles holds the five filename rules.
type NamingToggles struct {
	PrefixArtist bool `json:"prefix_artist"`
	PrefixSong   bool `json:"prefix_song"`
	PrefixBPM    bool `json:"prefix_bpm"`
	PrefixKey    bool `json:"prefix_key"`
	SuffixOG     bool `json:"suffix_og"`
}

// DefaultToggles returns the rules enabled on a fresh session: artist and
// song prefixes and the _og suffix.
func DefaultToggles() NamingToggles {
	return NamingToggles{
		PrefixArtist: true,
		PrefixSong:   true,
		PrefixBPM:    false,
		PrefixKey:    false,
		SuffixOG:     true,
	}
}

// Get returns the value of one toggle.
func (n NamingToggles) Get(t Toggle) bool {
	switch t {
	case PrefixArtist:
		return n.PrefixArtist
	case PrefixSong:
		return n.PrefixSong
	case PrefixBPM:
		return n.PrefixBPM
	case PrefixKey:
		return n.PrefixKey
	case SuffixOG:
		return n.SuffixOG
	}
	return false
}

// Set returns n with one toggle changed.
func (n NamingToggles) Set(t Toggle, on bool) NamingToggles {
	switch t {
	case PrefixArtist:
		n.PrefixArtist = on
	case PrefixSong:
		n.PrefixSong = on
	case PrefixBPM:
		n.PrefixBPM = on
	case PrefixKey:
		n.PrefixKey = on
	case SuffixOG:
		n.SuffixOG = on
	}
	return n
}

// State is the session's selection. The zero value is an empty selection
// with every toggle off.
type State struct {
	Type       string
	Subtype    string
	Artist     string
	Song       string
	SampleName string
	Toggles    NamingToggles
	SourceFile string
}

// New returns an empty selection with the given toggles.
func New(toggles NamingToggles) State {
	return State{Toggles: toggles}
}

// Get returns the value held at level.
func (s State) Get(level Level) string {
	switch level {
	case LevelType:
		return s.Type
	case LevelSubtype:
		return s.Subtype
	case LevelArtist:
		return s.Artist
	case LevelSong:
		return s.Song
	}
	return ""
}

func (s State) set(level Level, value string) State {
	switch level {
	case LevelType:
		s.Type = value
	case LevelSubtype:
		s.Subtype = value
	case LevelArtist:
		s.Artist = value
	case LevelSong:
		s.Song = value
	}
	return s
}

// Select sets level to value and clears everything after it. Selecting the
// value already held returns s unchanged.
func (s State) Select(level Level, value string) State {
	if s.Get(level) == value {
		return s
	}
	return s.set(level, value).ClearBelow(level)
}

// Clear empties level and everything after it.
func (s State) Clear(level Level) State {
	return s.set(level, "").ClearBelow(level)
}

// ClearBelow empties every level after level and the sample name. The
// source file and the toggles are kept.
func (s State) ClearBelow(level Level) State {
	for _, l := range Levels {
		if l > level {
			s = s.set(l, "")
		}
	}
	s.SampleName = ""
	return s
}

// ClearAll empties the whole path, the sample name and the source file.
// Toggles keep their values.
func (s State) ClearAll() State {
	return New(s.Toggles)
}

// ClearSource empties only the source file, keeping every selection so
// another sample can be filed into the same place.
func (s State) ClearSource() State {
	s.SourceFile = ""
	return s
}

// WithSampleName sets the free-text sample name.
func (s State) WithSampleName(name string) State {
	s.SampleName = name
	return s
}

// WithSource sets the single source file.
func (s State) WithSource(path string) State {
	s.SourceFile = path
	return s
}

// WithToggle changes one naming rule.
func (s State) WithToggle(t Toggle, on bool) State {
	s.Toggles = s.Toggles.Set(t, on)
	return s
}

// PathComplete reports whether all four levels are set.
func (s State) PathComplete() bool {
	return s.Type != "" && s.Subtype != "" && s.Artist != "" && s.Song != ""
}

// Ready reports whether placement may run: full path, a non-blank sample
// name and one source file.
func (s State) Ready() bool {
	return len(s.Missing()) == 0
}

// Missing lists the unmet prerequisites of Ready in presentation order.
func (s State) Missing() []string {
	var missing []string
	for _, l := range Levels {
		if s.Get(l) == "" {
			missing = append(missing, l.String())
		}
	}
	if strings.TrimSpace(s.SampleName) == "" {
		missing = append(missing, "sample name")
	}
	if s.SourceFile == "" {
		missing = append(missing, "file")
	}
	return missing
}

// Visible reports whether the input for level should be offered. Subtype
// depends on type and song on artist; artist only follows subtype in order.
func (s State) Visible(level Level) bool {
	switch level {
	case LevelType:
		return true
	case LevelSubtype:
		return s.Type != ""
	case LevelArtist:
		return s.Type != "" && s.Subtype != ""
	case LevelSong:
		return s.Artist != ""
	}
	return false
}

// TerminalVisible reports whether the sample name and toggles are reachable.
func (s State) TerminalVisible() bool {
	return s.PathComplete()
}

// Reconcile drops references that no longer resolve in tax, cascading from
// the first stale level of each pair.
func (s State) Reconcile(tax *model.Taxonomy) State {
	if s.Type != "" {
		if _, ok := tax.FindType(s.Type); !ok {
			s = s.Clear(LevelType)
		}
	}
	if s.Subtype != "" && !tax.HasSubtype(s.Type, s.Subtype) {
		s = s.Clear(LevelSubtype)
	}
	if s.Artist != "" {
		if _, ok := tax.FindArtist(s.Artist); !ok {
			s = s.Clear(LevelArtist)
		}
	}
	if s.Song != "" {
		if _, ok := tax.FindSong(s.Artist, s.Song); !ok {
			s = s.Clear(LevelSong)
		}
	}
	return s
}
