package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/crosswalk/crosswalk"
)

func TestParseState(t *testing.T) {
	topics := DefaultTopics()
	cases := map[string]crosswalk.Kind{
		"OFF":          crosswalk.SetOff,
		"MAN":          crosswalk.SetWalk,
		"HAND":         crosswalk.SetDontWalk,
		"COUNTDOWN":    crosswalk.StartCountdown,
		" COUNTDOWN\n": crosswalk.StartCountdown,
	}
	for payload, kind := range cases {
		cmd, err := topics.Parse(DefaultStateTopic, []byte(payload))
		require.NoError(t, err, payload)
		assert.Equal(t, crosswalk.Command{Kind: kind}, cmd, payload)
	}
}

func TestParseCount(t *testing.T) {
	topics := DefaultTopics()

	cmd, err := topics.Parse(DefaultCountTopic, []byte("12"))
	require.NoError(t, err)
	assert.Equal(t, crosswalk.Count(12), cmd)

	cmd, err = topics.Parse(DefaultCountTopic, []byte("0\r\n"))
	require.NoError(t, err)
	assert.Equal(t, crosswalk.Count(0), cmd)

	cmd, err = topics.Parse(DefaultCountTopic, []byte("100000"))
	require.NoError(t, err)
	assert.Equal(t, uint(100000), cmd.Count)
}

func TestParseErrors(t *testing.T) {
	topics := DefaultTopics()
	cases := []struct {
		topic   string
		payload string
		err     error
	}{
		{DefaultStateTopic, "off", ErrUnknownState},
		{DefaultStateTopic, "WALK", ErrUnknownState},
		{DefaultStateTopic, "", ErrUnknownState},
		{DefaultStateTopic, "\xff\xfe", ErrInvalidPayload},
		{DefaultCountTopic, "-1", ErrInvalidCount},
		{DefaultCountTopic, "five", ErrInvalidCount},
		{DefaultCountTopic, "", ErrInvalidCount},
		{"crosswalk/other", "OFF", ErrUnknownTopic},
	}
	for _, c := range cases {
		_, err := topics.Parse(c.topic, []byte(c.payload))
		assert.ErrorIs(t, err, c.err, "%s %q", c.topic, c.payload)
	}
}

func TestParseCustomTopics(t *testing.T) {
	topics := Topics{State: "lights/x/state", Count: "lights/x/count"}

	cmd, err := topics.Parse("lights/x/state", []byte("HAND"))
	require.NoError(t, err)
	assert.Equal(t, crosswalk.SetDontWalk, cmd.Kind)

	_, err = topics.Parse(DefaultStateTopic, []byte("HAND"))
	assert.ErrorIs(t, err, ErrUnknownTopic)
}
