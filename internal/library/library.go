// Package library inspects the samples already filed under the root
// directory. It only reads the file system and never touches the taxonomy
// store or the selection.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	ioutils "github.com/brandon-m-wang/samplefsys/internal/io"
	"github.com/brandon-m-wang/samplefsys/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used by Scan when a non-positive limit is given.
const DefaultConcurrency = 4

// Listing is the content of one target directory.
type Listing struct {
	Dir string

	// Exists is false when the directory has not been created yet.
	Exists bool

	// Files are the visible regular files, sorted case-insensitively.
	Files []string
}

// Summary returns the one-line status shown above the file list.
func (l Listing) Summary() string {
	switch {
	case !l.Exists:
		return "Folder does not exist yet"
	case len(l.Files) == 0:
		return "No files yet"
	case len(l.Files) == 1:
		return "1 file"
	}
	return fmt.Sprintf("%d files", len(l.Files))
}

// ExistingFiles lists dir. A missing directory is reported through
// Listing.Exists, not as an error.
func ExistingFiles(dir string) (Listing, error) {
	l := Listing{Dir: dir}
	files, err := ioutils.ListVisibleFiles(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l, nil
		}
		return l, err
	}
	l.Exists = true
	l.Files = files
	return l, nil
}

// Entry is the inventory of one type/subtype/artist/song directory.
type Entry struct {
	Type    string
	Subtype string
	Artist  string
	Song    string
	Listing
}

// Inventory is the result of Scan, in taxonomy order: types and subtypes in
// stored order, artists case-insensitively, songs in stored order.
type Inventory struct {
	Entries []Entry

	// Total is the number of files across all entries.
	Total int
}

// Scan lists every type/subtype/artist/song combination of tax under root
// using at most concurrency parallel directory reads. Directories that do
// not exist are included with Exists false.
func Scan(ctx context.Context, root string, tax *model.Taxonomy, concurrency int) (*Inventory, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var entries []Entry
	for _, typ := range tax.Types {
		for _, sub := range typ.Subtypes {
			for _, artist := range tax.ArtistNames() {
				for _, song := range tax.SongNames(artist) {
					entries = append(entries, Entry{
						Type:    typ.Name,
						Subtype: sub,
						Artist:  artist,
						Song:    song,
						Listing: Listing{Dir: filepath.Join(root, typ.Name, sub, artist, song)},
					})
				}
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var total atomic.Int64
	for i := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l, err := ExistingFiles(entries[i].Dir)
			if err != nil {
				return err
			}
			entries[i].Listing = l
			total.Add(int64(len(l.Files)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Inventory{Entries: entries, Total: int(total.Load())}, nil
}

// Populated returns the entries that hold at least one file.
func (inv *Inventory) Populated() []Entry {
	var out []Entry
	for _, e := range inv.Entries {
		if len(e.Files) > 0 {
			out = append(out, e)
		}
	}
	return out
}
