package playback

import "fmt"

// TrackError reports the track that stopped the sequence. Err wraps
// audio.ErrDecode or audio.ErrDevice.
type TrackError struct {
	Index int    // Position in the played list
	Path  string // Track that failed
	Err   error
}

// Error returns the error message.
func (e *TrackError) Error() string {
	return fmt.Sprintf("playback of track %d (%s) failed: %v", e.Index+1, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TrackError) Unwrap() error {
	return e.Err
}
