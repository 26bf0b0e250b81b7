// Package naming builds the destination filename for a sample from the
// selection and the taxonomy.
//
// Layout of a generated name:
//
//	[subtype][_bpm][_artist][_song][_key]_<sample name>[_og][.ext]
//
// Example:
//
//	sel := selection.State{Type: "Drums", Subtype: "Loops", Artist: "SZA",
//	    Song: "Kill Bill", SampleName: "snare1", SourceFile: "snare.wav",
//	    Toggles: selection.NamingToggles{PrefixArtist: true, PrefixSong: true, SuffixOG: true}}
//	name, _ := naming.Build(sel, tax, true)
//	// name = "Loop_SZA_Kill_Bill_snare1_og.wav"
package naming

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
)

// Build returns the filename for sel. With withExt set and a source file
// present, the source's extension is appended verbatim.
//
// Build is pure: it reads sel and tax and nothing else. It fails with
// model.ErrEmptyName when the trimmed sample name is empty.
func Build(sel selection.State, tax *model.Taxonomy, withExt bool) (string, error) {
	base := strings.TrimSpace(sel.SampleName)
	if base == "" {
		return "", model.ErrEmptyName
	}

	var bpm int
	var key string
	resolved := false
	if sel.Artist != "" && sel.Song != "" && tax != nil {
		if song, ok := tax.FindSong(sel.Artist, sel.Song); ok {
			bpm, key, resolved = song.BPM, song.Key, true
		}
	}

	var tokens []string
	if sel.Subtype != "" {
		tokens = append(tokens, SubtypeToken(sel.Subtype))
	}
	if sel.Toggles.PrefixBPM && resolved {
		tokens = append(tokens, strconv.Itoa(bpm))
	}
	if sel.Toggles.PrefixArtist && sel.Artist != "" {
		tokens = append(tokens, underscore(sel.Artist))
	}
	if sel.Toggles.PrefixSong && sel.Song != "" {
		tokens = append(tokens, underscore(sel.Song))
	}
	if sel.Toggles.PrefixKey && resolved && key != "" {
		tokens = append(tokens, underscore(key))
	}

	name := base
	if len(tokens) > 0 {
		name = strings.Join(tokens, "_") + "_" + base
	}
	if sel.Toggles.SuffixOG {
		name += "_og"
	}
	if withExt && sel.SourceFile != "" {
		name += filepath.Ext(sel.SourceFile)
	}
	return name, nil
}

// SubtypeToken turns a subtype into its filename token: spaces become
// underscores and the last character is dropped ("Loops" -> "Loop",
// "One Shots" -> "One_Shot"). The drop is unconditional, so a subtype that
// does not end in a plural "s" loses its last letter too.
func SubtypeToken(subtype string) string {
	r := []rune(underscore(subtype))
	if len(r) == 0 {
		return ""
	}
	return string(r[:len(r)-1])
}

// Preview returns the full filename (with extension) when sel is ready, and
// "" otherwise.
func Preview(sel selection.State, tax *model.Taxonomy) string {
	if !sel.Ready() {
		return ""
	}
	name, err := Build(sel, tax, true)
	if err != nil {
		return ""
	}
	return name
}

func underscore(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
