package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// These cases all fail before the speaker is touched, so no audio hardware is
// needed.
func TestBeepPlayer_PlayDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"garbage.wav":  "not a riff header",
		"garbage.flac": "not flac either",
		"notes.ogg":    "unsupported",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.mp3")},
		{name: "unsupported extension", path: filepath.Join(dir, "notes.ogg")},
		{name: "corrupt wav", path: filepath.Join(dir, "garbage.wav")},
		{name: "corrupt flac", path: filepath.Join(dir, "garbage.flac")},
	}

	p := NewBeepPlayer(zerolog.Nop())
	device := Device{Index: 0, Name: DefaultDeviceName}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Play(context.Background(), device, tt.path, 0)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Play() error = %v, want ErrDecode", err)
			}
			if p.speakerInit {
				t.Error("speaker initialized for a track that never decoded")
			}
		})
	}
}

func TestBeepPlayer_MissingFileWrapsNotExist(t *testing.T) {
	p := NewBeepPlayer(zerolog.Nop())

	err := p.Play(context.Background(), Device{}, filepath.Join(t.TempDir(), "gone.flac"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Play() error = %v, want wrapped os.ErrNotExist", err)
	}
}
