package preprocess

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

// DefaultTool is the SoX executable name looked up on PATH
const DefaultTool = "sox"

// DefaultRoot returns the cache root under the system temp directory.
func DefaultRoot() string {
	return filepath.Join(os.TempDir(), "playseq")
}

// Config holds cache configuration
type Config struct {
	Root string  // Parent of the per-pan cache directories
	Pan  float64 // Stereo pan baked into every output, -1 (left) to 1 (right)
	Tool string  // Executable invoked for cache misses
	Keep bool    // Leave the cache directory in place on Close
}

// Cache produces normalized, panned copies of tracks on disk.
//
// Outputs live in <Root>/p<pan>/<file name>. An existing output file is a
// cache hit and is trusted as-is, even if the source changed since it was
// written.
type Cache struct {
	config Config
	dir    string
	runner Runner
	logger zerolog.Logger
}

// DirName returns the cache directory name for a pan value.
func DirName(pan float64) string {
	return fmt.Sprintf("p%.2f", pan)
}

// Gains converts a pan value into the left and right channel gains used by
// the remix directive. A pan of 0 yields unity gains.
func Gains(pan float64) (left, right float64) {
	return clamp(1-pan, 0, 1), clamp(1+pan, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Args builds the tool argument vector for one track. Order is significant.
func Args(input, output string, pan float64) []string {
	left, right := Gains(pan)
	return []string{
		input,
		output,
		"-V1",
		"--replay-gain", "album",
		"remix",
		"1v" + strconv.FormatFloat(left, 'f', -1, 64),
		"2v" + strconv.FormatFloat(right, 'f', -1, 64),
	}
}

// Open creates the cache directory for cfg.Pan and returns a Cache using
// runner for misses. Close releases the directory.
func Open(cfg Config, runner Runner, logger zerolog.Logger) (*Cache, error) {
	if cfg.Root == "" {
		cfg.Root = DefaultRoot()
	}
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}

	dir := filepath.Join(cfg.Root, DirName(cfg.Pan))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{
		config: cfg,
		dir:    dir,
		runner: runner,
		logger: logger.With().Str("component", "preprocess").Str("cache_dir", dir).Logger(),
	}, nil
}

// Dir returns the cache directory for this pan value.
func (c *Cache) Dir() string {
	return c.dir
}

// OutputPath returns where the processed copy of track is stored.
func (c *Cache) OutputPath(track string) string {
	return filepath.Join(c.dir, filepath.Base(track))
}

// Process returns the processed path for every track, in order.
//
// Tracks with an existing output are reused without running the tool. Any
// tool failure aborts the whole call; outputs produced before the failure
// stay on disk and count as hits next time. onProgress, if set, is called
// after each track with the number handled so far.
func (c *Cache) Process(ctx context.Context, tracks []string, onProgress func(done, total int)) ([]string, error) {
	processed := make([]string, 0, len(tracks))

	for i, track := range tracks {
		output := c.OutputPath(track)

		hit, err := exists(output)
		if err != nil {
			return nil, fmt.Errorf("failed to check cache for %s: %w", track, err)
		}

		if hit {
			c.logger.Debug().Str("track", track).Msg("Cache hit")
		} else {
			if err := c.produce(ctx, track, output); err != nil {
				return nil, err
			}
		}

		processed = append(processed, output)
		if onProgress != nil {
			onProgress(i+1, len(tracks))
		}
	}

	return processed, nil
}

// produce runs the tool for a single cache miss
func (c *Cache) produce(ctx context.Context, track, output string) error {
	c.logger.Debug().Str("track", track).Str("output", output).Msg("Processing track")

	if err := c.runner.Run(ctx, c.config.Tool, Args(track, output, c.config.Pan)...); err != nil {
		// a partial file would be trusted as a hit on the next run
		if rmErr := os.Remove(output); rmErr != nil && !os.IsNotExist(rmErr) {
			c.logger.Warn().Err(rmErr).Str("output", output).Msg("Failed to remove partial output")
		}
		return fmt.Errorf("failed to preprocess %s: %w", track, err)
	}
	return nil
}

// Close removes the cache directory tree unless the cache was opened with
// Keep. Callers treat a failure as a diagnostic only.
func (c *Cache) Close() error {
	if c.config.Keep {
		c.logger.Debug().Msg("Keeping cache directory")
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("failed to remove cache directory %s: %w", c.dir, err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
