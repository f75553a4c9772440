package crosswalk

// State is the physical signal shown by the two lines.
type State int32

const (
	Off State = iota
	Walk
	DontWalk
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case Walk:
		return "walk"
	case DontWalk:
		return "dont_walk"
	}
	return "unknown"
}
