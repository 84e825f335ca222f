package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jfmyers9/playseq/internal/audio"
	"github.com/jfmyers9/playseq/internal/config"
	"github.com/jfmyers9/playseq/internal/playback"
	"github.com/jfmyers9/playseq/internal/preprocess"
	"github.com/jfmyers9/playseq/internal/selection"
	"github.com/jfmyers9/playseq/internal/source"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Malformed ranges fail before touching the filesystem
	trackRange, err := selection.Parse(cfg.TrackSelect)
	if err != nil {
		return err
	}
	if err := trackRange.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.LogFile, cfg.LogLevel)

	ctx, cancel := notifyContext(cmd.Context(), logger)
	defer cancel()

	src, err := source.NewResolver(afero.NewOsFs(), logger).Resolve(cfg.InputPath)
	if err != nil {
		return err
	}

	tracks := src.Tracks
	if src.Kind == source.KindDirectory {
		tracks = selection.Apply(tracks, trackRange)
	} else if !trackRange.IsZero() {
		logger.Warn().
			Str("kind", src.Kind.String()).
			Str("range", trackRange.String()).
			Msg("Track selection only applies to directories, ignoring")
	}

	logger.Info().
		Str("input", src.Path).
		Str("kind", src.Kind.String()).
		Int("tracks", len(tracks)).
		Msg("Resolved tracks")

	out := cmd.OutOrStdout()
	pan := cfg.StereoPan

	if cfg.Preprocess && len(tracks) > 0 {
		cache, err := preprocess.Open(preprocess.Config{
			Root: cfg.CacheDir,
			Pan:  pan,
			Tool: cfg.SoxPath,
			Keep: cfg.KeepCache,
		}, preprocess.NewExecRunner(), logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to clean up preprocessing cache")
			}
		}()

		tracks, err = preprocessTracks(ctx, cache, tracks, out)
		if err != nil {
			return err
		}

		// the pan is already in the processed audio
		pan = 0
	}

	seq := playback.New(playback.Config{
		Pause: cfg.PauseDuration(),
		Delay: cfg.DelayDuration(),
		Pan:   pan,
	}, audio.SpeakerLister{}, deviceSelector(cmd, cfg), audio.NewBeepPlayer(logger), out, logger)

	return seq.Run(ctx, tracks)
}

// preprocessTracks runs the cache over tracks, printing a counter per track
func preprocessTracks(ctx context.Context, cache *preprocess.Cache, tracks []string, out io.Writer) ([]string, error) {
	return cache.Process(ctx, tracks, func(done, total int) {
		fmt.Fprintf(out, "Preprocessed %d/%d\n", done, total)
	})
}

// deviceSelector prompts on the command's streams unless an index was given
func deviceSelector(cmd *cobra.Command, cfg *config.Config) audio.DeviceSelector {
	if cfg.Device >= 0 {
		return audio.FixedSelector{Index: cfg.Device}
	}
	return audio.NewPromptSelector(cmd.InOrStdin(), cmd.OutOrStdout())
}
