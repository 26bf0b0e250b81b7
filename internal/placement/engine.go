// Package placement copies a source sample into the directory implied by a
// selection, under the generated filename, without ever overwriting.
//
// Example:
//
//	engine := placement.NewEngine(settings.RootDir, placement.WithTagger(audio.NewTagger(nil)))
//	res, err := engine.Place(ctx, sel, st.Taxonomy())
//	var exists *placement.DestinationExistsError
//	if errors.As(err, &exists) {
//	    // ask the user for another sample name
//	}
package placement

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/audio"
	ioutils "github.com/brandon-m-wang/samplefsys/internal/io"
	"github.com/brandon-m-wang/samplefsys/internal/model"
	"github.com/brandon-m-wang/samplefsys/internal/naming"
	"github.com/brandon-m-wang/samplefsys/internal/selection"
)

// ErrNotReady is returned when Place is called with an incomplete selection.
var ErrNotReady = errors.New("fill all fields")

// DestinationExistsError reports a placement that was refused because the
// target file is already there.
type DestinationExistsError struct {
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("file not saved: %s already exists", e.Path)
}

// Is matches model.ErrDestinationExists.
func (e *DestinationExistsError) Is(target error) bool {
	return target == model.ErrDestinationExists
}

// Result describes a completed placement.
type Result struct {
	// Dir is the target directory root/type/subtype/artist/song.
	Dir string

	// FileName is the final filename including extension.
	FileName string

	// Path is Dir joined with FileName.
	Path string

	// Bytes is the number of bytes copied.
	Bytes int64

	// Warnings holds non-fatal problems, such as a failed tag write.
	Warnings []string
}

// Engine files samples under a root directory.
type Engine struct {
	root       string
	tagger     *audio.Tagger
	onProgress ioutils.ProgressFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithTagger tags supported copies (MP3) with the selection's metadata.
func WithTagger(t *audio.Tagger) Option {
	return func(e *Engine) { e.tagger = t }
}

// WithProgress reports copy progress.
func WithProgress(fn ioutils.ProgressFunc) Option {
	return func(e *Engine) { e.onProgress = fn }
}

// NewEngine creates an Engine rooted at root.
func NewEngine(root string, opts ...Option) *Engine {
	e := &Engine{root: root}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the library root directory.
func (e *Engine) Root() string {
	return e.root
}

// TargetDir returns root/type/subtype/artist/song for sel, or "" when any
// of the four levels is unset. Segments are used literally.
func (e *Engine) TargetDir(sel selection.State) string {
	if !sel.PathComplete() {
		return ""
	}
	return filepath.Join(e.root, sel.Type, sel.Subtype, sel.Artist, sel.Song)
}

// Place copies sel.SourceFile to TargetDir(sel)/<generated name><ext>.
//
// This method:
//  1. Rejects a selection that is not ready (ErrNotReady)
//  2. Creates the target directory and any missing parents
//  3. Builds the filename (model.ErrInvalidName if empty or not a single
//     path segment)
//  4. Refuses to touch an existing destination (DestinationExistsError)
//  5. Copies bytes, permission bits and modification time
//  6. Tags the copy when a tagger is configured and the format supports it
//
// The source file is only ever read. The caller should clear the selection's
// source file on success to file another sample into the same place.
func (e *Engine) Place(ctx context.Context, sel selection.State, tax *model.Taxonomy) (*Result, error) {
	if !sel.Ready() {
		return nil, fmt.Errorf("%w: missing %s", ErrNotReady, strings.Join(sel.Missing(), ", "))
	}

	dir := e.TargetDir(sel)
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	nameNoExt, err := naming.Build(sel, tax, false)
	if err != nil || nameNoExt == "" {
		return nil, model.ErrInvalidName
	}

	fileName := nameNoExt + filepath.Ext(sel.SourceFile)
	if err := model.ValidateSegment(fileName); err != nil {
		return nil, err
	}
	dest := filepath.Join(dir, fileName)
	if ioutils.Exists(dest) {
		return nil, &DestinationExistsError{Path: dest}
	}

	n, err := ioutils.CopyNew(ctx, sel.SourceFile, dest, e.onProgress)
	if err != nil {
		if errors.Is(err, model.ErrDestinationExists) {
			return nil, &DestinationExistsError{Path: dest}
		}
		return nil, fmt.Errorf("copy %s: %w", filepath.Base(sel.SourceFile), err)
	}

	res := &Result{Dir: dir, FileName: fileName, Path: dest, Bytes: n}

	if e.tagger != nil && e.tagger.Supports(dest) {
		info := audio.SampleInfo{
			Path:    dest,
			Title:   nameNoExt,
			Artist:  sel.Artist,
			Song:    sel.Song,
			Type:    sel.Type,
			Subtype: sel.Subtype,
		}
		if tax != nil {
			if song, ok := tax.FindSong(sel.Artist, sel.Song); ok {
				info.BPM, info.Key = song.BPM, song.Key
			}
		}
		if err := e.tagger.SaveTags(info); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("tagging %s: %v", fileName, err))
		}
	}

	return res, nil
}
