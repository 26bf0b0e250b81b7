package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a loaded taxonomy: every name
// passes ValidateSegment and is unique at its level, and every song has a BPM
// in range and a non-empty key. All violations are joined into one error.
func (t *Taxonomy) Validate() error {
	var errs []error

	if t.Types == nil {
		errs = append(errs, errors.New(`missing "types"`))
	}
	if t.Artists == nil {
		errs = append(errs, errors.New(`missing "artists"`))
	}

	seenTypes := make(map[string]bool, len(t.Types))
	for i, typ := range t.Types {
		if err := ValidateSegment(typ.Name); err != nil {
			errs = append(errs, fmt.Errorf("types[%d]: %w", i, err))
			continue
		}
		if seenTypes[typ.Name] {
			errs = append(errs, &DuplicateError{Kind: KindType, Name: typ.Name})
		}
		seenTypes[typ.Name] = true

		seenSubs := make(map[string]bool, len(typ.Subtypes))
		for j, sub := range typ.Subtypes {
			if err := ValidateSegment(sub); err != nil {
				errs = append(errs, fmt.Errorf("types[%d].subtypes[%d]: %w", i, j, err))
				continue
			}
			if seenSubs[sub] {
				errs = append(errs, &DuplicateError{Kind: KindSubtype, Name: typ.Name + "/" + sub})
			}
			seenSubs[sub] = true
		}
	}

	for name, artist := range t.Artists {
		if err := ValidateSegment(name); err != nil {
			errs = append(errs, fmt.Errorf("artists: %w", err))
		}
		if artist == nil {
			errs = append(errs, fmt.Errorf("artists[%q]: null entry", name))
			continue
		}
		seenSongs := make(map[string]bool, len(artist.Songs))
		for j, s := range artist.Songs {
			if err := ValidateSegment(s.Name); err != nil {
				errs = append(errs, fmt.Errorf("artists[%q].songs[%d]: %w", name, j, err))
				continue
			}
			if seenSongs[s.Name] {
				errs = append(errs, &DuplicateError{Kind: KindSong, Name: name + "/" + s.Name})
			}
			seenSongs[s.Name] = true
			if s.BPM < MinBPM || s.BPM > MaxBPM {
				errs = append(errs, fmt.Errorf("artists[%q].songs[%q]: %w", name, s.Name, &InvalidBpmError{Value: fmt.Sprint(s.BPM)}))
			}
			if strings.TrimSpace(s.Key) == "" {
				errs = append(errs, fmt.Errorf("artists[%q].songs[%q]: %w", name, s.Name, ErrInvalidKey))
			}
		}
	}

	return errors.Join(errs...)
}
