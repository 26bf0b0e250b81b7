package audio

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the taxonomy.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    Artist:  TagModify,      // TPE1 from the selected artist
//	    Title:   TagModify,      // TIT2 from the generated filename
//	    Album:   TagModify,      // TALB from the selected song
//	    BPM:     TagModify,      // TBPM from the song's BPM
//	    Key:     TagModify,      // TKEY from the song's key
//	    Genre:   TagDoNotModify, // keep whatever the sample pack wrote
//	}
type TagConfig struct {
	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Album controls the TALB (Album title) frame, filled with the song name.
	Album TagEditAction

	// BPM controls the TBPM (Beats per minute) frame.
	BPM TagEditAction

	// Key controls the TKEY (Initial key) frame.
	Key TagEditAction

	// Genre controls the TCON (Content type) frame, filled with "Type/Subtype".
	Genre TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// written from the taxonomy.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Artist: TagModify,
		Title:  TagModify,
		Album:  TagModify,
		BPM:    TagModify,
		Key:    TagModify,
		Genre:  TagModify,
	}
}

// SampleInfo is the metadata written into a filed sample.
type SampleInfo struct {
	Path    string
	Title   string
	Artist  string
	Song    string
	BPM     int
	Key     string
	Type    string
	Subtype string
}

// Tagger writes ID3 tags to filed MP3 samples.
//
// Only .mp3 files carry ID3 tags; Supports reports whether a path is
// eligible and SaveTags is a no-op for everything else.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if tagger.Supports(dest) {
//	    err := tagger.SaveTags(info)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// Supports reports whether path can carry ID3 tags.
func (t *Tagger) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// SaveTags writes ID3 tags to info.Path.
//
// This method:
//  1. Opens the file, parsing existing tags
//  2. Updates frames based on TagConfig settings
//  3. Saves the modified tags to the file
//
// Returns an error if the file cannot be opened or saved. Files that
// Supports rejects are left alone.
func (t *Tagger) SaveTags(info SampleInfo) error {
	if !t.Supports(info.Path) {
		return nil
	}

	tag, err := id3v2.Open(info.Path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	t.updateStringTags(tag, info)

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, info SampleInfo) {
	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(info.Artist)
	}

	// Title (TIT2)
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(info.Title)
	}

	// Album (TALB)
	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(info.Song)
	}

	// BPM (TBPM)
	switch t.config.BPM {
	case TagEmpty:
		tag.DeleteFrames("TBPM")
	case TagModify:
		if info.BPM > 0 {
			tag.AddTextFrame("TBPM", id3v2.EncodingUTF8, strconv.Itoa(info.BPM))
		}
	}

	// Initial key (TKEY)
	switch t.config.Key {
	case TagEmpty:
		tag.DeleteFrames("TKEY")
	case TagModify:
		if info.Key != "" {
			tag.AddTextFrame("TKEY", id3v2.EncodingUTF8, info.Key)
		}
	}

	// Genre (TCON)
	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		genre := info.Type
		if info.Subtype != "" {
			genre += "/" + info.Subtype
		}
		tag.SetGenre(genre)
	}
}
