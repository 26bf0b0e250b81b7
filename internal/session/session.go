package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/audio"
	"github.com/brandon-m-wang/samplefsys/internal/config"
	ioutils "github.com/brandon-m-wang/samplefsys/internal/io"
	"github.com/brandon-m-wang/samplefsys/internal/library"
	"github.com/brandon-m-wang/samplefsys/internal/logging"
	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/mutator"
	"github.com/brandon-m-wang/samplefsys/internal/naming"
	"github.com/brandon-m-wang/samplefsys/internal/placement"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/brandon-m-wang/samplefsys/internal/store"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// EventLevel indicates the severity/type of an event message.
type EventLevel int

const (
	LevelInfo EventLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l EventLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	}
	return "unknown"
}

// Event is the user-facing outcome of one operation.
type Event struct {
	Message string
	Level   EventLevel
}

// Forward returns an event callback that writes each event to l. Verbose
// events are logged at DEBUG.
func Forward(l *logging.Logger) func(Event) {
	return func(e Event) {
		l.Log(e.Level.logLevel(), e.Message)
	}
}

func (l EventLevel) logLevel() logging.Level {
	switch l {
	case LevelVerbose:
		return logging.LevelDebug
	case LevelWarning:
		return logging.LevelWarn
	case LevelError:
		return logging.LevelError
	case LevelSuccess:
		return logging.LevelSuccess
	}
	return logging.LevelInfo
}

// ErrNotAudioFile is returned by SetSource for files outside the configured
// audio extensions.
var ErrNotAudioFile = errors.New("not a supported audio file")

// Session coordinates the selection, the taxonomy and placement for one
// user. It is not safe for concurrent use.
type Session struct {
	settings *config.Settings
	store    *store.Store
	mutator  *mutator.Mutator
	engine   *placement.Engine
	sel      selection.State

	onEvent func(Event)
}

// New creates a Session over st. Placement options (progress reporting) are
// passed through to the engine; a tagger is added when settings enable it.
func New(settings *config.Settings, st *store.Store, onEvent func(Event), opts ...placement.Option) *Session {
	if settings.TagSamples {
		opts = append(opts, placement.WithTagger(audio.NewTagger(audio.DefaultTagConfig())))
	}
	return &Session{
		settings: settings,
		store:    st,
		mutator:  mutator.New(st, settings.RootDir),
		engine:   placement.NewEngine(settings.RootDir, opts...),
		sel:      selection.New(settings.ToToggles()).Reconcile(st.Taxonomy()),
		onEvent:  onEvent,
	}
}

func (s *Session) emit(level EventLevel, format string, args ...any) {
	if s.onEvent != nil {
		s.onEvent(Event{Message: fmt.Sprintf(format, args...), Level: level})
	}
}

// fail reports err as the single event of a failed operation and returns it.
func (s *Session) fail(err error) error {
	msg := err.Error()
	var exists *placement.DestinationExistsError
	switch {
	case errors.Is(err, placement.ErrNotReady):
		msg = "Fill all fields (" + strings.TrimPrefix(msg, placement.ErrNotReady.Error()+": ") + ")"
	case errors.As(err, &exists):
		msg = fmt.Sprintf("File not saved: %s already exists", filepath.Base(exists.Path))
	}
	s.emit(LevelError, "%s", msg)
	return err
}

// Settings returns the settings the session was created with.
func (s *Session) Settings() *config.Settings {
	return s.settings
}

// Taxonomy returns the current taxonomy. Callers must not mutate it.
func (s *Session) Taxonomy() *model.Taxonomy {
	return s.store.Taxonomy()
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() selection.State {
	return s.sel
}

// Ready reports whether Place may run.
func (s *Session) Ready() bool {
	return s.sel.Ready()
}

// Preview returns the filename Place would produce, or "" when not ready.
func (s *Session) Preview() string {
	return naming.Preview(s.sel, s.store.Taxonomy())
}

// TargetDir returns the directory the selection points at, or "".
func (s *Session) TargetDir() string {
	return s.engine.TargetDir(s.sel)
}

// Options returns the names offered at level, sorted case-insensitively.
// A non-empty filter keeps the fuzzy matches (case-insensitive), substring
// matches first. Levels that are not visible yet offer nothing.
func (s *Session) Options(level selection.Level, filter string) []string {
	if !s.sel.Visible(level) {
		return nil
	}
	tax := s.store.Taxonomy()
	var names []string
	switch level {
	case selection.LevelType:
		names = tax.TypeNames()
	case selection.LevelSubtype:
		names = tax.SubtypeNames(s.sel.Type)
	case selection.LevelArtist:
		names = tax.ArtistNames()
	case selection.LevelSong:
		names = tax.SongNames(s.sel.Artist)
	}
	model.SortFold(names)

	filter = strings.TrimSpace(filter)
	if filter == "" {
		return names
	}

	ranks := fuzzy.RankFindFold(filter, names)
	lower := strings.ToLower(filter)
	sort.SliceStable(ranks, func(i, j int) bool {
		si := strings.Contains(strings.ToLower(ranks[i].Target), lower)
		sj := strings.Contains(strings.ToLower(ranks[j].Target), lower)
		if si != sj {
			return si
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

// Select sets level to value, which must be one of the level's options.
func (s *Session) Select(level selection.Level, value string) error {
	if !s.sel.Visible(level) {
		return s.fail(fmt.Errorf("select %s first", previous(level)))
	}
	found := false
	for _, name := range s.Options(level, "") {
		if name == value {
			found = true
			break
		}
	}
	if !found {
		return s.fail(&model.NotFoundError{Kind: level.Kind(), Name: value})
	}
	s.sel = s.sel.Select(level, value)
	s.emit(LevelVerbose, "Selected %s: %s", level, value)
	return nil
}

func previous(level selection.Level) selection.Level {
	switch level {
	case selection.LevelArtist:
		return selection.LevelSubtype
	case selection.LevelSong:
		return selection.LevelArtist
	}
	return selection.LevelType
}

// Clear empties level and everything after it.
func (s *Session) Clear(level selection.Level) {
	s.sel = s.sel.Clear(level)
	s.emit(LevelVerbose, "Cleared %s", level)
}

// SetSampleName sets the free-text sample name.
func (s *Session) SetSampleName(name string) {
	s.sel = s.sel.WithSampleName(name)
}

// SetToggle changes one naming rule.
func (s *Session) SetToggle(t selection.Toggle, on bool) {
	s.sel = s.sel.WithToggle(t, on)
}

// Toggle flips one naming rule and returns its new value.
func (s *Session) Toggle(t selection.Toggle) bool {
	on := !s.sel.Toggles.Get(t)
	s.SetToggle(t, on)
	return on
}

// SetSource chooses the sample to file. path must be an existing regular
// file with one of the configured audio extensions.
func (s *Session) SetSource(path string) error {
	path = strings.TrimSpace(path)
	if !ioutils.IsRegularFile(path) {
		return s.fail(&fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist})
	}
	if !s.settings.IsAudioFile(path) {
		return s.fail(fmt.Errorf("%w: %s", ErrNotAudioFile, path))
	}
	s.sel = s.sel.WithSource(path)
	s.emit(LevelInfo, "Selected file: %s", path)
	return nil
}

// ClearFile drops the source file and keeps every selection.
func (s *Session) ClearFile() {
	s.sel = s.sel.ClearSource()
	s.emit(LevelInfo, "Cleared file")
}

// ClearAll resets everything except the naming toggles.
func (s *Session) ClearAll() {
	s.sel = s.sel.ClearAll()
	s.emit(LevelInfo, "Cleared all")
}

// ExistingFiles lists the samples already in the target directory. ok is
// false when the path is incomplete.
func (s *Session) ExistingFiles() (listing library.Listing, ok bool, err error) {
	dir := s.TargetDir()
	if dir == "" {
		return library.Listing{}, false, nil
	}
	listing, err = library.ExistingFiles(dir)
	return listing, true, err
}

// Place files the source sample. On success only the source file is
// cleared so another sample can go into the same place.
func (s *Session) Place(ctx context.Context) (*placement.Result, error) {
	res, err := s.engine.Place(ctx, s.sel, s.store.Taxonomy())
	if err != nil {
		return nil, s.fail(err)
	}
	s.sel = s.sel.ClearSource()
	if len(res.Warnings) > 0 {
		s.emit(LevelWarning, "Saved: %s (%s)", res.FileName, strings.Join(res.Warnings, "; "))
	} else {
		s.emit(LevelSuccess, "Saved: %s", res.FileName)
	}
	return res, nil
}

// Create adds name at level under the current selection and selects it.
// Songs are created with CreateSong.
func (s *Session) Create(level selection.Level, name string) error {
	var (
		out *mutator.Outcome
		err error
	)
	switch level {
	case selection.LevelType:
		out, err = s.mutator.CreateType(&s.sel, name)
	case selection.LevelSubtype:
		out, err = s.mutator.CreateSubtype(&s.sel, name)
	case selection.LevelArtist:
		out, err = s.mutator.CreateArtist(&s.sel, name)
	default:
		err = fmt.Errorf("create %s: use CreateSong", level)
	}
	return s.report(out, err, name)
}

// CreateSong adds a song to the selected artist. bpm is parsed from user
// input.
func (s *Session) CreateSong(name, bpm, key string) error {
	if s.sel.Artist == "" {
		return s.fail(model.ErrNoArtistSelected)
	}
	n, err := mutator.ParseBPM(bpm)
	if err != nil {
		return s.fail(err)
	}
	out, err := s.mutator.CreateSong(&s.sel, name, n, key)
	return s.report(out, err, name)
}

// Delete removes name at level. Subtypes are taken from the selected type
// and songs from the selected artist. alsoDeleteFiles is ignored for
// artists, whose files are never removed.
func (s *Session) Delete(level selection.Level, name string, alsoDeleteFiles bool) error {
	var (
		out *mutator.Outcome
		err error
	)
	switch level {
	case selection.LevelType:
		out, err = s.mutator.DeleteType(&s.sel, name, alsoDeleteFiles)
	case selection.LevelSubtype:
		if s.sel.Type == "" {
			return s.fail(model.ErrNoTypeSelected)
		}
		out, err = s.mutator.DeleteSubtype(&s.sel, s.sel.Type, name, alsoDeleteFiles)
	case selection.LevelArtist:
		out, err = s.mutator.DeleteArtist(&s.sel, name)
	case selection.LevelSong:
		if s.sel.Artist == "" {
			return s.fail(model.ErrNoArtistSelected)
		}
		out, err = s.mutator.DeleteSong(&s.sel, s.sel.Artist, name, alsoDeleteFiles)
	default:
		err = fmt.Errorf("delete: unknown level %d", level)
	}
	return s.report(out, err, "")
}

func (s *Session) report(out *mutator.Outcome, err error, name string) error {
	if err != nil {
		if errors.Is(err, model.ErrInvalidName) {
			if hint := model.SanitizeSegment(name); hint != "" {
				s.emit(LevelError, "%v (try %q)", err, hint)
				return err
			}
		}
		return s.fail(err)
	}
	if len(out.Warnings) > 0 {
		s.emit(LevelWarning, "%s (%s)", out.Message, strings.Join(out.Warnings, "; "))
		return nil
	}
	s.emit(LevelSuccess, "%s", out.Message)
	return nil
}

// FirstExisting returns the first argument naming an existing regular file,
// or "" when there is none.
func FirstExisting(args []string) string {
	for _, a := range args {
		if a != "" && ioutils.IsRegularFile(a) {
			return a
		}
	}
	return ""
}
