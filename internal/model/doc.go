// Package model defines the taxonomy data structures shared throughout
// sample-fsys, and the domain errors every other package reports.
//
// # Taxonomy
//
// The taxonomy is a fixed four-level hierarchy made of two independent
// two-level trees:
//
//	Type -> Subtype   (e.g. "Drums" -> "Loops")
//	Artist -> Song    (e.g. "SZA" -> "Kill Bill", 140 BPM, "C# Minor")
//
// A sample is filed under root/type/subtype/artist/song.
//
//	tax := model.NewTaxonomy()
//	tax.Types = append(tax.Types, model.Type{Name: "Drums", Subtypes: []string{"Loops"}})
//	song, ok := tax.FindSong("SZA", "Kill Bill")
//
// # Path Segments
//
// Every taxonomy name becomes a directory name. ValidateSegment rejects names
// that cannot be used as a single path segment on any common filesystem.
//
// # Errors
//
// Sentinel errors (ErrDuplicate, ErrInvalidBpm, ...) are matched with
// errors.Is; the structured types (DuplicateError, NotFoundError,
// InvalidBpmError) carry the offending value and match their sentinel.
package model
