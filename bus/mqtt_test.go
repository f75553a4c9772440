package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/crosswalk/crosswalk"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestMQTTSourceOnMessage(t *testing.T) {
	h, rec, _ := newTestHandler()
	s := NewMQTTSource(MQTTConfig{Broker: "tcp://127.0.0.1:1883", ClientID: "test"}, h)

	s.onMessage(nil, fakeMessage{topic: DefaultStateTopic, payload: []byte("HAND")})
	s.onMessage(nil, fakeMessage{topic: DefaultCountTopic, payload: []byte("x")})
	s.onMessage(nil, fakeMessage{topic: DefaultCountTopic, payload: []byte("3")})

	assert.Equal(t, []crosswalk.Command{{Kind: crosswalk.SetDontWalk}, crosswalk.Count(3)}, rec.cmds)
}

func TestMQTTOptions(t *testing.T) {
	opts := MQTTConfig{Broker: "tcp://broker:1883", Username: "u", Password: "p", ClientID: "cw"}.options()
	assert.Equal(t, "cw", opts.ClientID)
	assert.Equal(t, "u", opts.Username)
	assert.Equal(t, "p", opts.Password)
	assert.True(t, opts.AutoReconnect)
	if assert.Len(t, opts.Servers, 1) {
		assert.Equal(t, "broker:1883", opts.Servers[0].Host)
	}

	anon := MQTTConfig{Broker: "tcp://broker:1883"}.options()
	assert.Empty(t, anon.Username)
}
