package audio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrDeviceInput is returned for a device choice that is not a listed index.
// The prompt recovers from it by asking again.
var ErrDeviceInput = errors.New("audio: invalid device choice")

// Device is an output device the player can open
type Device struct {
	Index int    // Position in the listing, used for selection
	Name  string // Human-readable name
}

// String returns the listing form of the device
func (d Device) String() string {
	return fmt.Sprintf("%d: %s", d.Index, d.Name)
}

// DeviceLister enumerates output devices
type DeviceLister interface {
	Devices() ([]Device, error)
}

// DeviceSelector picks one device out of a listing
type DeviceSelector interface {
	Select(devices []Device) (Device, error)
}

// DefaultDeviceName names the system output the speaker package opens.
const DefaultDeviceName = "default"

// SpeakerLister lists the outputs reachable through the beep speaker. The
// speaker always opens the system default output, so that is the only entry.
type SpeakerLister struct{}

// Devices returns the default output device
func (SpeakerLister) Devices() ([]Device, error) {
	return []Device{{Index: 0, Name: DefaultDeviceName}}, nil
}

// PromptSelector asks the user to choose a device by index.
type PromptSelector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptSelector creates a selector reading choices from in and writing
// the listing and prompts to out.
func NewPromptSelector(in io.Reader, out io.Writer) *PromptSelector {
	return &PromptSelector{in: bufio.NewReader(in), out: out}
}

// Select prints the devices and reads choices until one is valid. It only
// fails when input cannot be read, including end of input.
func (s *PromptSelector) Select(devices []Device) (Device, error) {
	if len(devices) == 0 {
		return Device{}, fmt.Errorf("%w: no output devices available", ErrDevice)
	}

	fmt.Fprintln(s.out, "Available devices:")
	for _, d := range devices {
		fmt.Fprintf(s.out, " %s\n", d)
	}

	for {
		fmt.Fprint(s.out, "Input choice: ")

		line, readErr := s.in.ReadString('\n')
		if readErr != nil && line == "" {
			return Device{}, fmt.Errorf("failed to read device choice: %w", readErr)
		}

		device, err := choose(devices, line)
		if err == nil {
			return device, nil
		}
		fmt.Fprintln(s.out, err)

		if readErr != nil {
			return Device{}, fmt.Errorf("failed to read device choice: %w", readErr)
		}
	}
}

// FixedSelector picks a preconfigured index without prompting.
type FixedSelector struct {
	Index int
}

// Select returns the device at the configured index
func (s FixedSelector) Select(devices []Device) (Device, error) {
	return choose(devices, strconv.Itoa(s.Index))
}

// choose parses a typed choice and looks it up in devices
func choose(devices []Device, input string) (Device, error) {
	input = strings.TrimSpace(input)

	i, err := strconv.Atoi(input)
	if err != nil {
		return Device{}, fmt.Errorf("%w: %q is not a number", ErrDeviceInput, input)
	}

	for _, d := range devices {
		if d.Index == i {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: no device with index %d", ErrDeviceInput, i)
}
