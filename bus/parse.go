// Package bus turns messages from a publish/subscribe broker into
// controller commands.
package bus

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mastercactapus/crosswalk/crosswalk"
)

const (
	DefaultStateTopic = "crosswalk/state"
	DefaultCountTopic = "crosswalk/count"
)

var (
	ErrUnknownTopic   = errors.New("unknown topic")
	ErrUnknownState   = errors.New("unknown state")
	ErrInvalidCount   = errors.New("invalid count")
	ErrInvalidPayload = errors.New("payload is not valid UTF-8")
)

var stateWords = map[string]crosswalk.Kind{
	"OFF":       crosswalk.SetOff,
	"MAN":       crosswalk.SetWalk,
	"HAND":      crosswalk.SetDontWalk,
	"COUNTDOWN": crosswalk.StartCountdown,
}

// Topics names the two channels commands arrive on.
type Topics struct {
	State string
	Count string
}

func DefaultTopics() Topics {
	return Topics{State: DefaultStateTopic, Count: DefaultCountTopic}
}

func (t Topics) List() []string { return []string{t.State, t.Count} }

// Parse maps a message to a command. Payloads are trimmed of surrounding
// whitespace; state words are case sensitive.
func (t Topics) Parse(topic string, payload []byte) (crosswalk.Command, error) {
	if topic != t.State && topic != t.Count {
		return crosswalk.Command{}, ErrUnknownTopic
	}
	if !utf8.Valid(payload) {
		return crosswalk.Command{}, ErrInvalidPayload
	}
	p := strings.TrimSpace(string(payload))

	if topic == t.State {
		k, ok := stateWords[p]
		if !ok {
			return crosswalk.Command{}, ErrUnknownState
		}
		return crosswalk.Command{Kind: k}, nil
	}

	n, err := strconv.ParseUint(p, 10, strconv.IntSize)
	if err != nil {
		return crosswalk.Command{}, ErrInvalidCount
	}
	return crosswalk.Count(uint(n)), nil
}
