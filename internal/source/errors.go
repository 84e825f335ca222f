package source

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrPath is matched by a *PathError.
	ErrPath = errors.New("source: input path unavailable")

	// ErrUnsupportedExtension is matched by an *UnsupportedExtensionError.
	ErrUnsupportedExtension = errors.New("source: unsupported file extension")

	// ErrNotAudio marks a playlist entry without a supported audio extension.
	ErrNotAudio = errors.New("not a supported audio file")

	// ErrMissingEntry marks a playlist entry whose file does not exist.
	ErrMissingEntry = errors.New("file does not exist")
)

// PathError reports an input path that does not exist or cannot be read.
type PathError struct {
	Path string
	Err  error
}

// Error returns the error message.
func (e *PathError) Error() string {
	return fmt.Sprintf("source: cannot read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *PathError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPath) match any *PathError.
func (e *PathError) Is(target error) bool { return target == ErrPath }

// UnsupportedExtensionError reports a single-file input that is neither an
// audio file nor a playlist.
type UnsupportedExtensionError struct {
	Path      string
	Extension string
}

// Error returns the error message.
func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("source: unsupported extension %q for %s (want mp3, wav, flac or m3u8)", e.Extension, e.Path)
}

// Is lets errors.Is(err, ErrUnsupportedExtension) match.
func (e *UnsupportedExtensionError) Is(target error) bool { return target == ErrUnsupportedExtension }

// SkippedEntry is a playlist line dropped while loading. Skips are
// diagnostics, never load failures.
type SkippedEntry struct {
	Line   int    // 1-based line number in the playlist
	Entry  string // Path as written in the playlist
	Reason error  // ErrMissingEntry, ErrNotAudio or a stat error
}

// String renders the skip for log output.
func (s SkippedEntry) String() string {
	return fmt.Sprintf("line %d: %s: %v", s.Line, s.Entry, s.Reason)
}
