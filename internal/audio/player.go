package audio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog"
)

var (
	// ErrDecode is returned when a track cannot be opened or decoded
	ErrDecode = errors.New("audio: decode failed")

	// ErrDevice is returned when the output device cannot be opened
	ErrDevice = errors.New("audio: device unavailable")
)

// SpeakerBufferSize is the output latency requested from the speaker
const SpeakerBufferSize = 100 * time.Millisecond

// Player plays a single track to completion
type Player interface {
	// Play blocks until the track at path has finished or ctx is done.
	// A pan beyond PanEpsilon routes playback through the spatial path.
	Play(ctx context.Context, device Device, path string, pan float64) error
}

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

var decoders = map[string]decodeFunc{
	".mp3": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return mp3.Decode(f)
	},
	".wav": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(f)
	},
	".flac": func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(f)
	},
}

// BeepPlayer implements Player on top of the beep speaker.
type BeepPlayer struct {
	mu          sync.Mutex
	speakerInit bool
	sampleRate  beep.SampleRate
	logger      zerolog.Logger
}

// NewBeepPlayer creates a player. The speaker is opened lazily on the first
// track.
func NewBeepPlayer(logger zerolog.Logger) *BeepPlayer {
	return &BeepPlayer{
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Play decodes path and streams it to the speaker
func (p *BeepPlayer) Play(ctx context.Context, device Device, path string, pan float64) error {
	streamer, format, closeTrack, err := open(path)
	if err != nil {
		return err
	}
	defer closeTrack()

	if err := p.initSpeaker(format.SampleRate); err != nil {
		return err
	}

	var out beep.Streamer = streamer
	if math.Abs(pan) > PanEpsilon {
		balance := SpatialLayout(pan).Balance()
		out = &effects.Pan{Streamer: streamer, Pan: balance}
		p.logger.Debug().Float64("pan", pan).Float64("balance", balance).Msg("Using spatial output")
	}

	p.logger.Debug().
		Str("device", device.Name).
		Str("track", path).
		Int("sample_rate", int(format.SampleRate)).
		Msg("Playing track")

	done := make(chan struct{})
	speaker.Play(beep.Seq(out, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}

	if err := streamer.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

// initSpeaker opens the speaker, reopening it when the sample rate changes
func (p *BeepPlayer) initSpeaker(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speakerInit && sampleRate == p.sampleRate {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(SpeakerBufferSize)); err != nil {
		return fmt.Errorf("%w: failed to initialize speaker: %w", ErrDevice, err)
	}
	p.sampleRate = sampleRate
	p.speakerInit = true

	p.logger.Debug().Int("sample_rate", int(sampleRate)).Msg("Speaker initialized")
	return nil
}

// open decodes the track, returning a func releasing its resources
func open(path string) (beep.StreamSeekCloser, beep.Format, func(), error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, beep.Format{}, nil, fmt.Errorf("%w: %s: unsupported format", ErrDecode, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	closeTrack := func() {
		streamer.Close()
		f.Close()
	}
	return streamer, format, closeTrack, nil
}
