package tui

import (
	"fmt"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/selection"
	"github.com/brandon-m-wang/samplefsys/internal/session"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxOptions       = 10
	maxExistingFiles = 8
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("sample-fsys"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Library: " + m.sess.Settings().RootDir))
	b.WriteString("\n\n")

	switch m.state {
	case StateBrowse:
		b.WriteString(m.viewForm())
	case StatePick:
		b.WriteString(m.viewPick())
	case StatePrompt:
		b.WriteString(m.viewPrompt())
	case StateConfirmDelete:
		b.WriteString(m.viewConfirm())
	case StatePlacing:
		b.WriteString(m.viewPlacing())
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder
	sel := m.sess.Selection()

	for i, r := range m.rows() {
		cursor := "  "
		label := dimStyle
		if i == m.focus {
			cursor = focusStyle.Render("› ")
			label = focusStyle
		}
		b.WriteString(cursor)
		switch r.kind {
		case rowFile:
			b.WriteString(label.Render(fmt.Sprintf("%-8s", "File")))
			b.WriteString(valueOr(sel.SourceFile, "none (o to choose)"))
		case rowLevel:
			b.WriteString(label.Render(fmt.Sprintf("%-8s", title(r.level.String()))))
			b.WriteString(valueOr(sel.Get(r.level), "-"))
		case rowName:
			b.WriteString(label.Render(fmt.Sprintf("%-8s", "Name")))
			b.WriteString(valueOr(sel.SampleName, "-"))
		case rowToggle:
			check := "[ ]"
			if sel.Toggles.Get(r.toggle) {
				check = "[x]"
			}
			b.WriteString(label.Render(check + " " + r.toggle.String()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if preview := m.sess.Preview(); preview != "" {
		b.WriteString(subtitleStyle.Render("Saves as: "))
		b.WriteString(successStyle.Render(preview))
	} else {
		b.WriteString(dimStyle.Render("Missing: " + strings.Join(sel.Missing(), ", ")))
	}
	b.WriteString("\n")

	if listing, ok, err := m.sess.ExistingFiles(); ok {
		var box strings.Builder
		box.WriteString(infoStyle.Render("Existing in this folder: " + listing.Summary()))
		if err != nil {
			box.WriteString("\n" + errorStyle.Render(err.Error()))
		}
		for i, f := range listing.Files {
			if i == maxExistingFiles {
				box.WriteString("\n" + dimStyle.Render(fmt.Sprintf("… %d more", len(listing.Files)-i)))
				break
			}
			box.WriteString("\n  " + f)
		}
		b.WriteString(boxStyle.Render(box.String()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewPick() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Choose " + m.pickLevel.String() + ":"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	options := m.sess.Options(m.pickLevel, m.input.Value())
	if len(options) == 0 {
		b.WriteString(dimStyle.Render("  no matches (esc, then + to add)"))
		b.WriteString("\n")
	}
	start := 0
	if m.pickCursor >= maxOptions {
		start = m.pickCursor - maxOptions + 1
	}
	for i := start; i < len(options) && i < start+maxOptions; i++ {
		if i == m.pickCursor {
			b.WriteString(focusStyle.Render("› " + options[i]))
		} else {
			b.WriteString("  " + options[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewPrompt() string {
	var b strings.Builder

	var label string
	switch m.prompt {
	case promptCreate:
		label = "Add " + m.promptLevel.String() + ":"
	case promptSongName:
		label = "Add song to " + m.sess.Selection().Artist + ":"
	case promptSongBPM:
		label = "BPM of " + m.songName + ":"
	case promptSongKey:
		label = "Key of " + m.songName + ":"
	case promptSampleName:
		label = "Sample name:"
	case promptPath:
		label = "Audio file (" + strings.Join(m.sess.Settings().AudioExtensions, " ") + "):"
	}
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.promptErr != "" {
		b.WriteString(errorStyle.Render(m.promptErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render(fmt.Sprintf("Delete %s %q?", m.deleteLevel, m.deleteName)))
	b.WriteString("\n\n")
	if m.deleteLevel == selection.LevelArtist {
		b.WriteString(dimStyle.Render("Removes the artist and all of its songs. Files on disk are kept."))
	} else {
		check := "[ ]"
		if m.deleteFiles {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s also delete files on disk (f)", check))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPlacing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Copying " + m.placing + "..."))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(m.copied.percent()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.events.snapshot() {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case session.LevelError:
			style = errorStyle
			prefix = "✗"
		case session.LevelWarning:
			style = warningStyle
			prefix = "!"
		case session.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case session.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	k := m.keys
	switch m.state {
	case StateBrowse:
		return helpLine(k.Up, k.Down, k.Select, k.Add, k.Delete, k.Clear, k.Toggle, k.Open, k.ClearFile, k.ClearAll, k.Save, k.Quit)
	case StatePick:
		return "↑/↓: move • " + helpLine(k.Confirm, k.Cancel)
	case StatePrompt:
		return helpLine(k.Confirm, k.Cancel)
	case StateConfirmDelete:
		if m.deleteLevel == selection.LevelArtist {
			return helpLine(k.Yes, k.No)
		}
		return helpLine(k.Yes, k.DeleteFiles, k.No)
	case StatePlacing:
		return "ctrl+c: abort"
	}
	return ""
}

func valueOr(v, fallback string) string {
	if v == "" {
		return dimStyle.Render(fallback)
	}
	return v
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
