package swing

// State is the swing state machine position.
type State int

const (
	Idle State = iota
	Swinging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Swinging:
		return "swinging"
	default:
		return "unknown"
	}
}
