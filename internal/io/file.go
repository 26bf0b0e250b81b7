// Package ioutils provides file system utilities for sample-fsys.
//
// This package contains functions for:
//   - Copying a file without ever overwriting the destination
//   - Directory creation and best-effort recursive removal
//   - Listing the visible files of a directory
//
// Copy checks the context between chunks; the underlying reads and writes
// themselves are not interruptible.
package ioutils

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/brandon-m-wang/samplefsys/internal/model"
)

// ProgressFunc receives the bytes written so far and the expected total.
type ProgressFunc func(written, total int64)

// ProgressWriter wraps a writer to track copy progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  info.Size(),
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, src)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (the source size).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate ProgressFunc
}

// Write implements io.Writer.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// CopyNew copies src to a new file dst, preserving the permission bits and
// modification time of src.
//
// The destination is created exclusively: if dst already exists nothing is
// written and the returned error matches model.ErrDestinationExists. The
// source is opened read-only. If the copy fails part-way the partial
// destination is removed.
//
// Parameters:
//   - ctx: checked between chunks
//   - src: Source file path (must exist and be a regular file)
//   - dst: Destination file path (must not exist)
//   - onProgress: optional progress callback (may be nil)
//
// Returns the number of bytes copied.
//
// Example:
//
//	n, err := CopyNew(ctx, "/incoming/snare.wav", "/samples/Drums/Loops/SZA/Kill Bill/Loop_snare1.wav", nil)
func CopyNew(ctx context.Context, src, dst string, onProgress ProgressFunc) (int64, error) {
	sourceFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, &fs.PathError{Op: "copy", Path: src, Err: errors.New("not a regular file")}
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, errors.Join(model.ErrDestinationExists, err)
		}
		return 0, err
	}

	pw := &ProgressWriter{Writer: destFile, Total: info.Size(), OnUpdate: onProgress}
	n, err := io.Copy(pw, ctxReader{ctx: ctx, r: sourceFile})
	if err == nil {
		err = destFile.Sync()
	}
	if closeErr := destFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, err
	}

	// the mode passed to OpenFile is filtered by umask
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return n, err
	}
	return n, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// RemoveTree recursively deletes path. A missing path is not an error.
func RemoveTree(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.RemoveAll(path)
}

// Exists reports whether path exists. Errors other than "not exist" count as
// existing, so callers never overwrite something they could not inspect.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}

// ListVisibleFiles returns the names of the regular files in dir that do not
// start with a dot, sorted case-insensitively. A missing dir yields
// fs.ErrNotExist.
func ListVisibleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	model.SortFold(names)
	return names, nil
}

// IsRegularFile reports whether path exists and is a regular file
// (following symlinks).
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
