package crosswalk

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesSetOrder(t *testing.T) {
	cases := []struct {
		state State
		first string
		last  string
	}{
		{Off, dontWalkPin, walkPin},
		{Walk, dontWalkPin, walkPin},
		{DontWalk, walkPin, dontWalkPin},
	}
	for _, c := range cases {
		t.Run(c.state.String(), func(t *testing.T) {
			pins := newFakePins(t)
			require.NoError(t, testLines(pins).Set(c.state))
			require.Len(t, pins.writes, 2)
			assert.Equal(t, c.first, pins.writes[0].pin)
			assert.Equal(t, byte(LOW), pins.writes[0].val)
			assert.Equal(t, c.last, pins.writes[1].pin)
			assert.Equal(t, []State{c.state}, pins.states())
		})
	}
}

func TestLinesNeverBothHigh(t *testing.T) {
	pins := newFakePins(t)
	l := testLines(pins)
	seq := []State{Walk, DontWalk, Walk, Off, DontWalk, DontWalk, Off, Walk}
	for _, s := range seq {
		require.NoError(t, l.Set(s))
	}
	assert.Equal(t, seq, pins.states())
}

func TestLinesInvert(t *testing.T) {
	pins := newFakePins(t)
	log, _ := test.NewNullLogger()
	l := NewLines(pins,
		Line{Name: "walk", Pin: 11, Invert: true},
		Line{Name: "dont_walk", Pin: 13, Invert: true},
		log,
	)
	require.NoError(t, l.Set(Walk))
	assert.Equal(t, byte(LOW), pins.levels[walkPin])
	assert.Equal(t, byte(HIGH), pins.levels[dontWalkPin])
}

func TestLinesWriteError(t *testing.T) {
	pins := newFakePins(t)
	pins.failAt = 2
	err := testLines(pins).Set(Walk)
	assert.ErrorIs(t, err, errPin)
	assert.Contains(t, err.Error(), "walk line")
}
