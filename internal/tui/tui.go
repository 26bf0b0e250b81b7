// Package tui provides a Bubble Tea terminal user interface for sample-fsys.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brandon-m-wang/samplefsys/internal/config"
	"github.com/brandon-m-wang/samplefsys/internal/logging"
	"github.com/brandon-m-wang/samplefsys/internal/mutator"
	"github.com/brandon-m-wang/samplefsys/internal/placement"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/brandon-m-wang/samplefsys/internal/session"
	"github.com/brandon-m-wang/samplefsys/internal/store"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(0, 1)
)

// State represents the current UI state.
type State int

const (
	StateBrowse State = iota
	StatePick
	StatePrompt
	StateConfirmDelete
	StatePlacing
)

type promptKind int

const (
	promptCreate promptKind = iota
	promptSongName
	promptSongBPM
	promptSongKey
	promptSampleName
	promptPath
)

type rowKind int

const (
	rowFile rowKind = iota
	rowLevel
	rowName
	rowToggle
)

type row struct {
	kind   rowKind
	level  selection.Level
	toggle selection.Toggle
}

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   session.EventLevel
}

const maxLogs = 6

// eventLog collects session events. Placement emits from a command
// goroutine, so access is locked.
type eventLog struct {
	mu      sync.Mutex
	entries []LogEntry
	verbose bool
	logger  *logging.Logger
}

func (l *eventLog) add(e session.Event) {
	if l.logger != nil {
		session.Forward(l.logger)(e)
	}
	if e.Level == session.LevelVerbose && !l.verbose {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Message: e.Message, Level: e.Level})
	if len(l.entries) > maxLogs {
		l.entries = l.entries[len(l.entries)-maxLogs:]
	}
}

func (l *eventLog) snapshot() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

type copyProgress struct {
	written atomic.Int64
	total   atomic.Int64
}

func (p *copyProgress) update(written, total int64) {
	p.written.Store(written)
	p.total.Store(total)
}

func (p *copyProgress) percent() float64 {
	total := p.total.Load()
	if total <= 0 {
		return 0
	}
	return float64(p.written.Load()) / float64(total)
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	sess     *session.Session
	keys     KeyMap
	input    textinput.Model
	spinner  spinner.Model
	progress progress.Model
	events   *eventLog
	copied   *copyProgress

	focus int

	// picker
	pickLevel  selection.Level
	pickCursor int

	// prompt
	prompt      promptKind
	promptLevel selection.Level
	promptErr   string
	songName    string
	songBPM     string

	// filename being copied; the session is not read while placing
	placing string

	// delete confirmation
	deleteLevel selection.Level
	deleteName  string
	deleteFiles bool

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// Options configures NewModel.
type Options struct {
	// InitialFile is preselected as the source when it is an audio file.
	InitialFile string

	// Logger receives every event; nil logs nowhere.
	Logger *logging.Logger

	// Verbose shows selection events in the UI log.
	Verbose bool
}

// NewModel creates a new TUI model over the taxonomy in st.
func NewModel(settings *config.Settings, st *store.Store, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	events := &eventLog{verbose: opts.Verbose, logger: opts.Logger}
	copied := &copyProgress{}
	sess := session.New(settings, st, events.add, placement.WithProgress(copied.update))
	if opts.InitialFile != "" {
		_ = sess.SetSource(opts.InitialFile)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateBrowse,
		sess:     sess,
		keys:     DefaultKeyMap(),
		input:    ti,
		spinner:  sp,
		progress: prog,
		events:   events,
		copied:   copied,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Session returns the session driven by the model.
func (m Model) Session() *session.Session {
	return m.sess
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Message types
type (
	// PlaceDoneMsg is sent when a placement finishes.
	PlaceDoneMsg struct {
		Result *placement.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// rows lists the form rows offered for the current selection.
func (m Model) rows() []row {
	sel := m.sess.Selection()
	rows := []row{{kind: rowFile}}
	for _, l := range selection.Levels {
		if sel.Visible(l) {
			rows = append(rows, row{kind: rowLevel, level: l})
		}
	}
	if sel.TerminalVisible() {
		rows = append(rows, row{kind: rowName})
		for _, t := range selection.Toggles {
			rows = append(rows, row{kind: rowToggle, toggle: t})
		}
	}
	return rows
}

func (m Model) current() row {
	rows := m.rows()
	if m.focus >= len(rows) {
		return rows[len(rows)-1]
	}
	return rows[m.focus]
}

func (m *Model) clampFocus() {
	n := len(m.rows())
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.cancel()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.state {
		case StateBrowse:
			m, cmd = m.updateBrowse(msg)
		case StatePick:
			m, cmd = m.updatePick(msg)
		case StatePrompt:
			m, cmd = m.updatePrompt(msg)
		case StateConfirmDelete:
			m = m.updateConfirm(msg)
		case StatePlacing:
			// keys are ignored until the copy finishes
			return m, nil
		}
		m.clampFocus()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PlaceDoneMsg:
		m.state = StateBrowse
		m.copied.update(0, 0)
		cmds = append(cmds, m.progress.SetPercent(0))
		m.clampFocus()

	case TickMsg:
		if m.state == StatePlacing {
			cmds = append(cmds, m.progress.SetPercent(m.copied.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	r := m.current()
	sel := m.sess.Selection()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.focus--

	case key.Matches(msg, m.keys.Down):
		m.focus++

	case key.Matches(msg, m.keys.Select):
		switch r.kind {
		case rowFile:
			return m.openPrompt(promptPath, 0, sel.SourceFile)
		case rowLevel:
			return m.openPick(r.level)
		case rowName:
			return m.openPrompt(promptSampleName, 0, sel.SampleName)
		case rowToggle:
			m.sess.Toggle(r.toggle)
		}

	case key.Matches(msg, m.keys.Toggle):
		if r.kind == rowToggle {
			m.sess.Toggle(r.toggle)
		}

	case key.Matches(msg, m.keys.Add):
		if r.kind == rowLevel {
			if r.level == selection.LevelSong {
				return m.openPrompt(promptSongName, r.level, "")
			}
			return m.openPrompt(promptCreate, r.level, "")
		}

	case key.Matches(msg, m.keys.Delete):
		if r.kind == rowLevel && sel.Get(r.level) != "" {
			m.state = StateConfirmDelete
			m.deleteLevel = r.level
			m.deleteName = sel.Get(r.level)
			m.deleteFiles = false
		}

	case key.Matches(msg, m.keys.Clear):
		switch r.kind {
		case rowLevel:
			m.sess.Clear(r.level)
		case rowName:
			m.sess.SetSampleName("")
		case rowFile:
			m.sess.ClearFile()
		}

	case key.Matches(msg, m.keys.Open):
		return m.openPrompt(promptPath, 0, sel.SourceFile)

	case key.Matches(msg, m.keys.ClearFile):
		m.sess.ClearFile()

	case key.Matches(msg, m.keys.ClearAll):
		m.sess.ClearAll()
		m.focus = 0

	case key.Matches(msg, m.keys.Save):
		if !m.sess.Ready() {
			// reports the missing fields
			_, _ = m.sess.Place(m.ctx)
			return m, nil
		}
		m.state = StatePlacing
		m.placing = m.sess.Preview()
		m.copied.update(0, 0)
		return m, tea.Batch(m.place(), m.spinner.Tick, m.tickProgress())
	}
	return m, nil
}

func (m Model) openPick(level selection.Level) (Model, tea.Cmd) {
	m.state = StatePick
	m.pickLevel = level
	m.pickCursor = 0
	m.input.Reset()
	m.input.Placeholder = "filter " + level.String() + "s"
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updatePick(msg tea.KeyMsg) (Model, tea.Cmd) {
	options := m.sess.Options(m.pickLevel, m.input.Value())

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = StateBrowse
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.pickCursor < len(options) {
			_ = m.sess.Select(m.pickLevel, options[m.pickCursor])
			m.state = StateBrowse
			m.input.Blur()
			m.focusLevel(m.pickLevel)
		}
		return m, nil

	case msg.Type == tea.KeyUp:
		if m.pickCursor > 0 {
			m.pickCursor--
		}
		return m, nil

	case msg.Type == tea.KeyDown:
		if m.pickCursor < len(options)-1 {
			m.pickCursor++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.pickCursor = 0
	return m, cmd
}

func (m *Model) focusLevel(level selection.Level) {
	for i, r := range m.rows() {
		if r.kind == rowLevel && r.level == level {
			m.focus = i
			return
		}
	}
}

func (m Model) openPrompt(kind promptKind, level selection.Level, value string) (Model, tea.Cmd) {
	m.state = StatePrompt
	m.prompt = kind
	m.promptLevel = level
	m.promptErr = ""
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = promptPlaceholder(kind, level)
	cmd := m.input.Focus()
	return m, cmd
}

func promptPlaceholder(kind promptKind, level selection.Level) string {
	switch kind {
	case promptCreate:
		return "new " + level.String()
	case promptSongName:
		return "new song"
	case promptSongBPM:
		return "BPM (1-400)"
	case promptSongKey:
		return "key, e.g. C# Minor"
	case promptSampleName:
		return "sample name"
	case promptPath:
		return "/path/to/sample.wav"
	}
	return ""
}

func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = StateBrowse
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		switch m.prompt {
		case promptCreate:
			_ = m.sess.Create(m.promptLevel, value)
			m.focusLevel(m.promptLevel)
		case promptSongName:
			m.songName = value
			return m.openPrompt(promptSongBPM, m.promptLevel, "")
		case promptSongBPM:
			if _, err := mutator.ParseBPM(value); err != nil {
				m.promptErr = err.Error()
				return m, nil
			}
			m.songBPM = value
			return m.openPrompt(promptSongKey, m.promptLevel, "")
		case promptSongKey:
			_ = m.sess.CreateSong(m.songName, m.songBPM, value)
			m.focusLevel(selection.LevelSong)
		case promptSampleName:
			m.sess.SetSampleName(value)
		case promptPath:
			_ = m.sess.SetSource(cleanPath(value))
		}
		m.state = StateBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Yes):
		_ = m.sess.Delete(m.deleteLevel, m.deleteName, m.deleteFiles)
		m.state = StateBrowse
	case key.Matches(msg, m.keys.DeleteFiles):
		if m.deleteLevel != selection.LevelArtist {
			m.deleteFiles = !m.deleteFiles
		}
	case key.Matches(msg, m.keys.No):
		m.state = StateBrowse
	}
	return m
}

// cleanPath undoes the quoting terminals add to dropped paths and expands
// a leading ~.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 && (p[0] == '\'' || p[0] == '"') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	p = strings.ReplaceAll(p, `\ `, " ")
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// place runs the copy off the update loop.
func (m Model) place() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		res, err := sess.Place(ctx)
		return PlaceDoneMsg{Result: res, Err: err}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Run starts the TUI application.
func Run(settings *config.Settings, st *store.Store, opts Options) error {
	p := tea.NewProgram(NewModel(settings, st, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
