package crosswalk

import "strconv"

// Kind identifies what a Command asks the controller to do.
type Kind int

const (
	SetOff Kind = iota
	SetWalk
	SetDontWalk
	StartCountdown
	SetCount
)

func (k Kind) String() string {
	switch k {
	case SetOff:
		return "set_off"
	case SetWalk:
		return "set_walk"
	case SetDontWalk:
		return "set_dont_walk"
	case StartCountdown:
		return "countdown"
	case SetCount:
		return "set_count"
	}
	return "unknown"
}

// Command is a single instruction for the Controller. Count is only
// meaningful for SetCount.
type Command struct {
	Kind  Kind
	Count uint
}

// Count returns a SetCount command for n blink steps.
func Count(n uint) Command {
	return Command{Kind: SetCount, Count: n}
}

func (c Command) String() string {
	if c.Kind == SetCount {
		return c.Kind.String() + "(" + strconv.FormatUint(uint64(c.Count), 10) + ")"
	}
	return c.Kind.String()
}
