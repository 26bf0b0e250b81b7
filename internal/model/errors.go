package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure kind a taxonomy or placement operation
// can report.
var (
	ErrDuplicate         = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrInvalidBpm        = errors.New("invalid BPM")
	ErrInvalidKey        = errors.New("key required")
	ErrEmptyName         = errors.New("name required")
	ErrInvalidName       = errors.New("invalid name")
	ErrDestinationExists = errors.New("target filename already exists")
	ErrNoTypeSelected    = errors.New("select type first")
	ErrNoArtistSelected  = errors.New("select artist first")
)

// Kind names the taxonomy level an error refers to.
type Kind string

const (
	KindType    Kind = "type"
	KindSubtype Kind = "subtype"
	KindArtist  Kind = "artist"
	KindSong    Kind = "song"
)

// DuplicateError is returned when creating a name that already exists.
type DuplicateError struct {
	Kind Kind
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// Is matches ErrDuplicate.
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// NotFoundError is returned when an operation names an item that is not in
// the taxonomy.
type NotFoundError struct {
	Kind Kind
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidBpmError carries the rejected BPM input.
type InvalidBpmError struct {
	Value string
}

func (e *InvalidBpmError) Error() string {
	return fmt.Sprintf("invalid BPM %q (%d-%d)", e.Value, MinBPM, MaxBPM)
}

// Is matches ErrInvalidBpm.
func (e *InvalidBpmError) Is(target error) bool { return target == ErrInvalidBpm }
