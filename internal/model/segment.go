package model

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reservedChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// ValidateSegment checks that name can be used verbatim as one path segment.
//
// Rejected:
//   - empty or whitespace-only names (ErrEmptyName)
//   - reserved characters <>:"/\|?* and control chars 0x00-0x1f
//   - "." and ".."
//   - leading or trailing whitespace, trailing dots (Windows strips them)
//
// Every rejection other than the empty name wraps ErrInvalidName.
//
// Example:
//
//	ValidateSegment("Kill Bill")   // nil
//	ValidateSegment("AC/DC")       // invalid name "AC/DC": reserved character "/"
func ValidateSegment(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if loc := reservedChars.FindStringIndex(name); loc != nil {
		return fmt.Errorf("%w %q: reserved character %q", ErrInvalidName, name, name[loc[0]:loc[1]])
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w %q: leading or trailing whitespace", ErrInvalidName, name)
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("%w %q: trailing dot", ErrInvalidName, name)
	}
	return nil
}

// SanitizeSegment replaces the characters ValidateSegment rejects.
//
// The following transformations are applied:
//   - Reserved characters (<>:"/\|?* and control chars) → underscore
//   - Trailing dots → removed
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// It is used to suggest a usable name, never to rename silently.
//
// Example:
//
//	SanitizeSegment("Song: Part 1/2") // Returns "Song_ Part 1_2"
func SanitizeSegment(name string) string {
	name = reservedChars.ReplaceAllString(name, "_")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.TrimRight(name, ".")
	return strings.TrimSpace(name)
}
