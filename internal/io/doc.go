// Package ioutils provides file system utilities used when filing samples.
//
// # Copying
//
// CopyNew never overwrites: the destination is created exclusively and an
// existing file is reported as model.ErrDestinationExists.
//
//	n, err := ioutils.CopyNew(ctx, "/incoming/snare.wav", dest, func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
//	if errors.Is(err, model.ErrDestinationExists) {
//	    // pick another name
//	}
//
// # Directories
//
//	err := ioutils.EnsureDir("/samples/Drums/Loops/SZA/Kill Bill")
//	err = ioutils.RemoveTree("/samples/Drums") // missing path is fine
//
// # Listing
//
//	names, err := ioutils.ListVisibleFiles(dir) // dot-files skipped, case-insensitive order
package ioutils
