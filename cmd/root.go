/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jfmyers9/playseq/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// newRootCmd builds the play command with its flags
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playseq",
		Short: "Play a directory, playlist or audio file as a timed sequence",
		Long: `playseq plays audio tracks one after another on a chosen output device.

The input can be a single mp3, wav or flac file, an m3u8 playlist, or a
directory of audio files. For directories, --track-select narrows the
list with a "skip:take" range:

  1:     skip the first track
  2:-1   skip two tracks and drop the last one

Tracks can be normalized and panned through SoX before playback with
--preprocess. Processed copies are cached per pan value.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage: true,
		RunE:         runPlay,
	}

	defaultConfig := filepath.Join(config.GetConfigDir(), "config.yaml")

	cmd.PersistentFlags().String("config", "", "Config file path (default: "+defaultConfig+")")
	cmd.PersistentFlags().String("log-file", "", "Log file path (default: stderr)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	flags := cmd.Flags()
	flags.StringP("input-path", "i", "", "Audio file, m3u8 playlist or directory to play (required)")
	flags.Float64("pause", 0, "Seconds to wait between tracks")
	flags.Float64("delay", 0, "Seconds to wait before the first track")
	flags.Float64("stereo-pan", 0, "Stereo pan bias from -1 (left) to 1 (right)")
	flags.String("track-select", "", `Range of directory tracks to play as "skip:take"`)
	flags.String("sox-path", "sox", "SoX executable used by --preprocess")
	flags.Bool("preprocess", false, "Normalize and pan tracks through SoX before playback")
	flags.String("cache-dir", "", "Preprocessing cache directory (default: <tmp>/playseq)")
	flags.Bool("keep-cache", false, "Keep the preprocessing cache after playback")
	flags.Int("device", -1, "Output device index (default: prompt)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file, environment and the flags of cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
