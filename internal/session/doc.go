// Package session is the contract between the core and a presentation
// layer (the TUI or the CLI).
//
// A Session owns the selection, routes mutations through the taxonomy
// mutator and files samples through the placement engine. Every operation
// outcome is reported through exactly one Event:
//
//	sess := session.New(settings, st, func(e session.Event) {
//	    switch e.Level {
//	    case session.LevelError:
//	        log.Error("%s", e.Message)
//	    case session.LevelSuccess:
//	        log.Success("%s", e.Message)
//	    default:
//	        log.Info("%s", e.Message)
//	    }
//	})
//
//	_ = sess.Select(selection.LevelType, "Drums")
//	_ = sess.SetSource("/incoming/snare.wav")
//	sess.SetSampleName("snare1")
//	if sess.Ready() {
//	    fmt.Println(sess.Preview())
//	    _, _ = sess.Place(ctx)
//	}
//
// The returned errors carry the same information as the events for callers
// that dispatch with errors.Is and errors.As.
package session
