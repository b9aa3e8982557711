package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit       // q, Esc, Ctrl+C
	IntentFlap       // space, k, w, up arrow
	IntentPause      // p
	IntentReset      // r
	IntentToggleMute // m, Ctrl+S
)

var intentNames = map[IntentType]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentFlap:       "flap",
	IntentPause:      "pause",
	IntentReset:      "reset",
	IntentToggleMute: "toggle_mute",
}

// String returns the binding name of the intent
func (t IntentType) String() string {
	if s, ok := intentNames[t]; ok {
		return s
	}
	return "unknown"
}
