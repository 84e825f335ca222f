package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jfmyers9/playseq/internal/audio"
	"github.com/rs/zerolog"
)

// ReferenceTotals are the assumed total playing times used to project when
// playback will end. Track durations are not measured.
var ReferenceTotals = []time.Duration{
	30 * time.Minute,
	45 * time.Minute,
	60 * time.Minute,
	90 * time.Minute,
}

// Config holds sequencer configuration
type Config struct {
	Pause time.Duration // Wait between consecutive tracks
	Delay time.Duration // Wait before the first track
	Pan   float64       // Stereo pan passed to the player, -1 (left) to 1 (right)
}

// Sequencer plays a track list one track at a time on a single device.
type Sequencer struct {
	config   Config
	lister   audio.DeviceLister
	selector audio.DeviceSelector
	player   audio.Player
	out      io.Writer
	progress progressLine
	logger   zerolog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	state  State
	device audio.Device
}

// New creates a Sequencer writing progress lines to out
func New(cfg Config, lister audio.DeviceLister, selector audio.DeviceSelector, player audio.Player, out io.Writer, logger zerolog.Logger) *Sequencer {
	return &Sequencer{
		config:   cfg,
		lister:   lister,
		selector: selector,
		player:   player,
		out:      out,
		progress: newProgressLine(),
		logger:   logger.With().Str("component", "sequencer").Logger(),
		now:      time.Now,
		sleep:    sleepContext,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state
func (s *Sequencer) State() State {
	return s.state
}

// Device returns the selected output device. It is the zero Device until a
// device has been selected.
func (s *Sequencer) Device() audio.Device {
	return s.device
}

// Run selects a device and plays tracks in order, blocking until the last
// one finishes. The first track failure ends the run with a *TrackError.
// Cancelling ctx interrupts the delay, pauses and the playing track.
func (s *Sequencer) Run(ctx context.Context, tracks []string) error {
	if len(tracks) == 0 {
		s.logger.Info().Msg("No tracks to play")
		s.setState(StateDone)
		return nil
	}

	if err := s.selectDevice(); err != nil {
		return err
	}

	if s.config.Delay > 0 {
		s.setState(StateDelaying)
		s.printProjections(len(tracks))
		if err := s.sleep(ctx, s.config.Delay); err != nil {
			return err
		}
	}

	total := len(tracks)
	for i, track := range tracks {
		s.setState(StatePlaying)
		fmt.Fprintln(s.out, s.progress.render(i, total, track, "playing"))

		if err := s.player.Play(ctx, s.device, track, s.config.Pan); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				return err
			}
			return &TrackError{Index: i, Path: track, Err: err}
		}

		if s.config.Pause > 0 && i < total-1 {
			s.setState(StatePausing)
			status := fmt.Sprintf("paused %s", s.config.Pause)
			fmt.Fprintln(s.out, s.progress.render(i+1, total, track, status))
			if err := s.sleep(ctx, s.config.Pause); err != nil {
				return err
			}
		}
	}

	s.setState(StateDone)
	fmt.Fprintln(s.out, s.progress.render(total, total, tracks[total-1], "done"))
	return nil
}

// selectDevice moves from Idle to DeviceSelected
func (s *Sequencer) selectDevice() error {
	devices, err := s.lister.Devices()
	if err != nil {
		return fmt.Errorf("failed to list output devices: %w", err)
	}

	device, err := s.selector.Select(devices)
	if err != nil {
		return fmt.Errorf("failed to select output device: %w", err)
	}

	s.device = device
	s.setState(StateDeviceSelected)
	fmt.Fprintf(s.out, "Output device: %s\n", device.Name)
	return nil
}

// Projections returns the estimated wall-clock end of playback for each of
// ReferenceTotals, counting the delay and the pauses between n tracks.
func (s *Sequencer) Projections(n int) []time.Time {
	start := s.now().Add(s.config.Delay)

	var pauses time.Duration
	if n > 1 {
		pauses = s.config.Pause * time.Duration(n-1)
	}

	ends := make([]time.Time, len(ReferenceTotals))
	for i, ref := range ReferenceTotals {
		ends[i] = start.Add(ref + pauses)
	}
	return ends
}

func (s *Sequencer) printProjections(n int) {
	fmt.Fprintf(s.out, "Starting in %s. Estimated end of playback:\n", s.config.Delay)
	for i, end := range s.Projections(n) {
		fmt.Fprintf(s.out, "  %3.0f min of audio: %s\n", ReferenceTotals[i].Minutes(), end.Format("15:04:05"))
	}
}

func (s *Sequencer) setState(state State) {
	s.logger.Debug().
		Str("from", s.state.String()).
		Str("to", state.String()).
		Msg("State change")
	s.state = state
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
