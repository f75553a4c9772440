package bus

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mastercactapus/crosswalk/crosswalk"
)

// Sender accepts parsed commands. *crosswalk.Queue implements it.
type Sender interface {
	Send(crosswalk.Command) bool
}

// Handler parses inbound messages and forwards valid commands. Malformed
// messages are logged and dropped here; they never reach the controller.
type Handler struct {
	Topics  Topics
	Queue   Sender
	Log     logrus.FieldLogger
	Metrics *crosswalk.Metrics
}

func (h *Handler) Handle(topic string, payload []byte) {
	lg := h.Log.WithFields(logrus.Fields{
		"Topic":   topic,
		"Payload": string(payload),
	})

	cmd, err := h.Topics.Parse(topic, payload)
	if err != nil {
		lg.WithError(err).Warnln("drop message")
		h.Metrics.Drop(dropReason(err))
		return
	}

	lg.WithField("Command", cmd).Debugln("received command")
	h.Queue.Send(cmd)
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, ErrUnknownTopic):
		return "unknown_topic"
	case errors.Is(err, ErrUnknownState):
		return "unknown_state"
	case errors.Is(err, ErrInvalidCount):
		return "invalid_count"
	}
	return "invalid_payload"
}
