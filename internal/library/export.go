package library

import (
	"fmt"

	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"gopkg.in/yaml.v3"
)

// Format selects the taxonomy export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	rootStyle   = lipgloss.NewStyle().Bold(true)
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	songStyle   = lipgloss.NewStyle().Faint(true)
)

// Export renders the taxonomy in the given format. JSON is the same document
// the store writes.
func Export(tax *model.Taxonomy, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return store.Encode(tax)
	case FormatYAML:
		return yaml.Marshal(tax)
	case FormatText, "":
		return []byte(renderTree(tax) + "\n"), nil
	}
	return nil, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}

func renderTree(tax *model.Taxonomy) string {
	types := tree.Root(rootStyle.Render("Types")).Enumerator(tree.RoundedEnumerator)
	for _, name := range tax.TypeNames() {
		t := tree.Root(branchStyle.Render(name))
		for _, sub := range tax.SubtypeNames(name) {
			t.Child(sub)
		}
		types.Child(t)
	}

	artists := tree.Root(rootStyle.Render("Artists")).Enumerator(tree.RoundedEnumerator)
	for _, name := range tax.ArtistNames() {
		a := tree.Root(branchStyle.Render(name))
		for _, song := range tax.SongNames(name) {
			s, _ := tax.FindSong(name, song)
			a.Child(song + " " + songStyle.Render(fmt.Sprintf("(%d BPM, %s)", s.BPM, s.Key)))
		}
		artists.Child(a)
	}

	return types.String() + "\n" + artists.String()
}
