package audio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

var testDevices = []Device{
	{Index: 0, Name: "Built-in Output"},
	{Index: 1, Name: "USB Headphones"},
	{Index: 2, Name: "HDMI"},
}

func TestPromptSelector_Select(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        Device
		wantPrompts int
		wantErr     bool
	}{
		{
			name:        "valid choice",
			input:       "1\n",
			want:        testDevices[1],
			wantPrompts: 1,
		},
		{
			name:        "surrounding whitespace",
			input:       "  2 \r\n",
			want:        testDevices[2],
			wantPrompts: 1,
		},
		{
			name:        "re-prompts on garbage",
			input:       "abc\n\n0\n",
			want:        testDevices[0],
			wantPrompts: 3,
		},
		{
			name:        "re-prompts on out of range index",
			input:       "7\n-1\n2\n",
			want:        testDevices[2],
			wantPrompts: 3,
		},
		{
			name:        "last line without newline",
			input:       "1",
			want:        testDevices[1],
			wantPrompts: 1,
		},
		{
			name:        "end of input",
			input:       "",
			wantPrompts: 1,
			wantErr:     true,
		},
		{
			name:        "end of input after bad choices",
			input:       "x\n9",
			wantPrompts: 2,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := NewPromptSelector(strings.NewReader(tt.input), &out)

			got, err := s.Select(testDevices)
			if tt.wantErr {
				if !errors.Is(err, io.EOF) {
					t.Errorf("Select() error = %v, want io.EOF", err)
				}
			} else {
				if err != nil {
					t.Fatalf("Select() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("Select() = %v, want %v", got, tt.want)
				}
			}

			if n := strings.Count(out.String(), "Input choice: "); n != tt.wantPrompts {
				t.Errorf("prompted %d times, want %d", n, tt.wantPrompts)
			}
		})
	}
}

func TestPromptSelector_ListsDevices(t *testing.T) {
	var out bytes.Buffer
	s := NewPromptSelector(strings.NewReader("0\n"), &out)

	if _, err := s.Select(testDevices); err != nil {
		t.Fatalf("Select() unexpected error: %v", err)
	}

	for _, want := range []string{"Available devices:", " 0: Built-in Output", " 1: USB Headphones", " 2: HDMI"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPromptSelector_NoDevices(t *testing.T) {
	s := NewPromptSelector(strings.NewReader("0\n"), io.Discard)

	_, err := s.Select(nil)
	if !errors.Is(err, ErrDevice) {
		t.Errorf("Select() error = %v, want ErrDevice", err)
	}
}

func TestFixedSelector_Select(t *testing.T) {
	got, err := FixedSelector{Index: 2}.Select(testDevices)
	if err != nil {
		t.Fatalf("Select() unexpected error: %v", err)
	}
	if got != testDevices[2] {
		t.Errorf("Select() = %v, want %v", got, testDevices[2])
	}

	_, err = FixedSelector{Index: 5}.Select(testDevices)
	if !errors.Is(err, ErrDeviceInput) {
		t.Errorf("Select() error = %v, want ErrDeviceInput", err)
	}
}

func TestSpeakerLister_Devices(t *testing.T) {
	devices, err := SpeakerLister{}.Devices()
	if err != nil {
		t.Fatalf("Devices() unexpected error: %v", err)
	}
	if len(devices) != 1 || devices[0].Index != 0 || devices[0].Name != DefaultDeviceName {
		t.Errorf("Devices() = %v, want the default device only", devices)
	}
}
