// Package mutator implements validated create and delete operations on the
// taxonomy, with their cascading effect on the selection.
//
// Every successful operation is persisted before it returns. A failed
// operation leaves both the store and the selection exactly as they were.
//
// Example:
//
//	m := mutator.New(st, settings.RootDir)
//	sel := selection.New(selection.DefaultToggles())
//	if _, err := m.CreateType(&sel, "Drums"); err != nil {
//	    // DuplicateError, InvalidNameError, persist failure
//	}
//	// sel.Type == "Drums"
package mutator
