// Package store persists the sample taxonomy as a human-readable JSON
// document.
//
// # Opening
//
// Open loads the file, or creates and persists the empty default taxonomy
// when the file does not exist yet:
//
//	st, err := store.Open("/samples/config.json")
//	var corrupt *store.CorruptStoreError
//	if errors.As(err, &corrupt) {
//	    // malformed JSON, wrong field types or broken invariants
//	}
//
// # Mutating
//
// Update applies a change to a copy, writes it and only then makes it
// visible, so a failed write never leaves memory and disk disagreeing:
//
//	err := st.Update(func(tax *model.Taxonomy) error {
//	    tax.Types = append(tax.Types, model.Type{Name: "Drums", Subtypes: []string{}})
//	    return nil
//	})
//
// # Durability
//
// Saves go to a temporary file in the same directory, are synced, and are
// renamed over the target. A crash leaves either the previous document or
// the new one.
package store
