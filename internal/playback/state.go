package playback

// State is a step of the sequencer's lifecycle
type State int

const (
	StateIdle           State = iota // Nothing started yet
	StateDeviceSelected              // Output device chosen
	StateDelaying                    // Waiting before the first track
	StatePlaying                     // A track is playing
	StatePausing                     // Waiting between tracks
	StateDone                        // Every track has played
)

// String returns a human-readable representation of the State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDeviceSelected:
		return "device selected"
	case StateDelaying:
		return "delaying"
	case StatePlaying:
		return "playing"
	case StatePausing:
		return "pausing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
