package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Kind identifies what an input path denotes
type Kind int

const (
	KindFile      Kind = iota // Single audio file
	KindPlaylist              // m3u8 playlist file
	KindDirectory             // Directory of audio files
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindPlaylist:
		return "playlist"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// PlaylistExtension is the only playlist format understood by the resolver
const PlaylistExtension = "m3u8"

// audioExtensions lists the formats the player can decode
var audioExtensions = map[string]bool{
	"mp3":  true,
	"wav":  true,
	"flac": true,
}

// IsAudio reports whether path has a supported audio extension.
func IsAudio(path string) bool {
	return audioExtensions[extension(path)]
}

// IsPlaylist reports whether path has the playlist extension.
func IsPlaylist(path string) bool {
	return extension(path) == PlaylistExtension
}

// extension returns the lower-cased extension without the leading dot
func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Source is the candidate track list resolved from an input path.
type Source struct {
	Path    string         // Input path as given
	Kind    Kind           // What the input path denotes
	Tracks  []string       // Ordered candidate list
	Skipped []SkippedEntry // Playlist lines dropped with a diagnostic
}

// Resolver turns an input path into a Source.
type Resolver struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewResolver creates a Resolver reading from fs. Pass afero.NewOsFs() for the
// real filesystem.
func NewResolver(fs afero.Fs, logger zerolog.Logger) *Resolver {
	return &Resolver{
		fs:     fs,
		logger: logger.With().Str("component", "source").Logger(),
	}
}

// Resolve determines whether path is an audio file, a playlist or a
// directory and returns its candidate tracks.
//
// Single files bypass range selection entirely; directory entries come back
// in filesystem enumeration order, which is not sorted.
func (r *Resolver) Resolve(path string) (*Source, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, &PathError{Path: path, Err: err}
	}

	if info.IsDir() {
		tracks, err := r.readDirectory(path)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().Str("path", path).Int("tracks", len(tracks)).Msg("Resolved directory")
		return &Source{Path: path, Kind: KindDirectory, Tracks: tracks}, nil
	}

	switch {
	case IsAudio(path):
		return &Source{Path: path, Kind: KindFile, Tracks: []string{path}}, nil
	case IsPlaylist(path):
		tracks, skipped, err := r.readPlaylist(path)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().
			Str("path", path).
			Int("tracks", len(tracks)).
			Int("skipped", len(skipped)).
			Msg("Resolved playlist")
		return &Source{Path: path, Kind: KindPlaylist, Tracks: tracks, Skipped: skipped}, nil
	default:
		return nil, &UnsupportedExtensionError{Path: path, Extension: extension(path)}
	}
}

// readDirectory lists the immediate audio files of dir without sorting
func (r *Resolver) readDirectory(dir string) ([]string, error) {
	f, err := r.fs.Open(dir)
	if err != nil {
		return nil, &PathError{Path: dir, Err: err}
	}
	defer f.Close()

	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, &PathError{Path: dir, Err: err}
	}

	var tracks []string
	for _, entry := range entries {
		if !IsAudio(entry.Name()) {
			continue
		}

		full := filepath.Join(dir, entry.Name())
		if !r.isRegularFile(entry, full) {
			continue
		}
		tracks = append(tracks, full)
	}
	return tracks, nil
}

// isRegularFile follows symlinks so linked tracks are still playable
func (r *Resolver) isRegularFile(info os.FileInfo, full string) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := r.fs.Stat(full)
		if err != nil {
			return false
		}
		info = target
	}
	return info.Mode().IsRegular()
}

// readPlaylist loads an m3u8 playlist, skipping comments and bad entries
func (r *Resolver) readPlaylist(path string) ([]string, []SkippedEntry, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, nil, &PathError{Path: path, Err: err}
	}
	defer f.Close()

	tracks, skipped, err := r.parsePlaylist(f, filepath.Dir(path))
	if err != nil {
		return nil, nil, &PathError{Path: path, Err: err}
	}
	return tracks, skipped, nil
}

// parsePlaylist reads entries from rd. Relative entries are resolved against
// baseDir, the directory holding the playlist.
func (r *Resolver) parsePlaylist(rd io.Reader, baseDir string) ([]string, []SkippedEntry, error) {
	var (
		tracks  []string
		skipped []SkippedEntry
	)

	scanner := bufio.NewScanner(rd)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := line
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(baseDir, entry)
		}

		if reason := r.checkEntry(entry); reason != nil {
			skip := SkippedEntry{Line: lineNum, Entry: line, Reason: reason}
			skipped = append(skipped, skip)
			r.logger.Warn().
				Int("line", lineNum).
				Str("entry", line).
				Err(reason).
				Msg("Skipping playlist entry")
			continue
		}

		tracks = append(tracks, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read playlist: %w", err)
	}

	return tracks, skipped, nil
}

// checkEntry returns the reason a playlist entry cannot be played, or nil
func (r *Resolver) checkEntry(path string) error {
	info, err := r.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrMissingEntry
		}
		return err
	}
	if info.IsDir() || !IsAudio(path) {
		return ErrNotAudio
	}
	return nil
}
