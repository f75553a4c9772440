package crosswalk

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
)

const (
	walkPin     = "11"
	dontWalkPin = "13"
)

var errPin = errors.New("pin fault")

type pinWrite struct {
	pin      string
	val      byte
	walk     byte
	dontWalk byte
	at       time.Time
}

// fakePins records every write and fails the test if both lines are ever
// high at once.
type fakePins struct {
	t       *testing.T
	levels  map[string]byte
	writes  []pinWrite
	failAt  int
	onWrite func(n int)
}

func newFakePins(t *testing.T) *fakePins {
	return &fakePins{t: t, levels: map[string]byte{walkPin: LOW, dontWalkPin: LOW}}
}

func (f *fakePins) DigitalWrite(pin string, val byte) error {
	n := len(f.writes) + 1
	if n == f.failAt {
		return errPin
	}
	f.levels[pin] = val
	f.writes = append(f.writes, pinWrite{
		pin:      pin,
		val:      val,
		walk:     f.levels[walkPin],
		dontWalk: f.levels[dontWalkPin],
		at:       time.Now(),
	})
	if f.levels[walkPin] == HIGH && f.levels[dontWalkPin] == HIGH {
		f.t.Errorf("both lines high after write %d", n)
	}
	if f.onWrite != nil {
		f.onWrite(n)
	}
	return nil
}

// states returns the state shown after each completed set (two writes).
func (f *fakePins) states() []State {
	var out []State
	for i := 1; i < len(f.writes); i += 2 {
		w := f.writes[i]
		switch {
		case w.walk == HIGH:
			out = append(out, Walk)
		case w.dontWalk == HIGH:
			out = append(out, DontWalk)
		default:
			out = append(out, Off)
		}
	}
	return out
}

func testLines(f *fakePins) *Lines {
	log, _ := test.NewNullLogger()
	return NewLines(f,
		Line{Name: "walk", Pin: 11},
		Line{Name: "dont_walk", Pin: 13},
		log,
	)
}
