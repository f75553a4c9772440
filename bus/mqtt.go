package bus

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const connectTimeout = 10 * time.Second

type MQTTConfig struct {
	Broker   string
	Username string
	Password string
	ClientID string
	QoS      byte
}

func (c MQTTConfig) options() *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(c.Broker).
		SetClientID(c.ClientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)
	if c.Username != "" {
		opts.SetUsername(c.Username)
		opts.SetPassword(c.Password)
	}
	return opts
}

// MQTTSource subscribes to the command topics and feeds a Handler. The
// subscriptions are renewed on every connect, so a broker restart does not
// lose them.
type MQTTSource struct {
	cfg    MQTTConfig
	h      *Handler
	client mqtt.Client
	log    logrus.FieldLogger
}

func NewMQTTSource(cfg MQTTConfig, h *Handler) *MQTTSource {
	s := &MQTTSource{
		cfg: cfg,
		h:   h,
		log: h.Log.WithField("Broker", cfg.Broker),
	}
	opts := cfg.options().
		SetOnConnectHandler(s.onConnect).
		SetConnectionLostHandler(s.onConnectionLost)
	s.client = mqtt.NewClient(opts)
	return s
}

func (s *MQTTSource) Start() error {
	tok := s.client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect %s: timed out", s.cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("connect %s: %w", s.cfg.Broker, err)
	}
	return nil
}

// Stop disconnects; no messages are delivered after it returns.
func (s *MQTTSource) Stop() {
	s.client.Disconnect(250)
}

func (s *MQTTSource) onConnect(c mqtt.Client) {
	s.log.Infoln("connected to broker")
	for _, topic := range s.h.Topics.List() {
		tok := c.Subscribe(topic, s.cfg.QoS, s.onMessage)
		tok.Wait()
		if err := tok.Error(); err != nil {
			s.log.WithError(err).WithField("Topic", topic).Errorln("subscribe")
			continue
		}
		s.log.WithField("Topic", topic).Infoln("subscribed")
	}
}

func (s *MQTTSource) onConnectionLost(_ mqtt.Client, err error) {
	s.log.WithError(err).Warnln("connection lost")
}

func (s *MQTTSource) onMessage(_ mqtt.Client, m mqtt.Message) {
	s.h.Handle(m.Topic(), m.Payload())
}

// PublishMQTT sends a single message and disconnects.
func PublishMQTT(cfg MQTTConfig, topic, payload string) error {
	client := mqtt.NewClient(cfg.options())
	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect %s: timed out", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("connect %s: %w", cfg.Broker, err)
	}
	defer client.Disconnect(250)

	tok = client.Publish(topic, cfg.QoS, false, payload)
	tok.Wait()
	return tok.Error()
}
