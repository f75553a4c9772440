package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mastercactapus/crosswalk/bus"
	"github.com/mastercactapus/crosswalk/crosswalk"
)

var (
	ErrMissingPin = errors.New("missing pin")
	ErrSamePin    = errors.New("walk and dont-walk lines share a pin")
	ErrDelays     = errors.New("initial delay must be longer than blink delay")
	ErrNoSource   = errors.New("no command source configured (MQTT.Broker or Redis.Addr)")
)

type Config struct {
	InitialDelayMs int64
	BlinkDelayMs   int64
	Count          uint
	QueueSize      int
	SafeInterrupt  bool

	StateTopic string
	CountTopic string

	Walk     Light
	DontWalk Light

	MQTT    bus.MQTTConfig
	Redis   bus.RedisConfig
	Metrics MetricsConfig
}

type Light struct {
	Pin    int
	Invert bool
}

type MetricsConfig struct {
	Listen string
}

func (c *Config) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMs) * time.Millisecond
}
func (c *Config) BlinkDelay() time.Duration {
	return time.Duration(c.BlinkDelayMs) * time.Millisecond
}

func (c *Config) Topics() bus.Topics {
	return bus.Topics{State: c.StateTopic, Count: c.CountTopic}
}

func (c *Config) Lines() (walk, dontWalk crosswalk.Line) {
	walk = crosswalk.Line{Name: "walk", Pin: c.Walk.Pin, Invert: c.Walk.Invert}
	dontWalk = crosswalk.Line{Name: "dont_walk", Pin: c.DontWalk.Pin, Invert: c.DontWalk.Invert}
	return walk, dontWalk
}

// LoadConfig decodes the TOML file at path, fills in defaults and validates
// the result.
func LoadConfig(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, err
	}
	c.setDefaults(md)
	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) setDefaults(md toml.MetaData) {
	if c.InitialDelayMs == 0 {
		c.InitialDelayMs = crosswalk.DefaultInitialDelay.Milliseconds()
	}
	if c.BlinkDelayMs == 0 {
		c.BlinkDelayMs = crosswalk.DefaultBlinkDelay.Milliseconds()
	}
	// an explicit Count = 0 is valid and means no blink steps
	if !md.IsDefined("Count") {
		c.Count = crosswalk.DefaultCount
	}
	if c.QueueSize <= 0 {
		c.QueueSize = crosswalk.DefaultQueueSize
	}
	if c.StateTopic == "" {
		c.StateTopic = bus.DefaultStateTopic
	}
	if c.CountTopic == "" {
		c.CountTopic = bus.DefaultCountTopic
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "crosswalk"
	}
}

func (c *Config) Validate() error {
	if c.Walk.Pin == 0 {
		return fmt.Errorf("Walk: %w", ErrMissingPin)
	}
	if c.DontWalk.Pin == 0 {
		return fmt.Errorf("DontWalk: %w", ErrMissingPin)
	}
	if c.Walk.Pin == c.DontWalk.Pin {
		return fmt.Errorf("pin %d: %w", c.Walk.Pin, ErrSamePin)
	}
	if c.BlinkDelayMs < 0 || c.InitialDelayMs <= c.BlinkDelayMs {
		return fmt.Errorf("InitialDelayMs=%d BlinkDelayMs=%d: %w", c.InitialDelayMs, c.BlinkDelayMs, ErrDelays)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("MQTT.QoS %d: must be 0, 1 or 2", c.MQTT.QoS)
	}
	if c.StateTopic == c.CountTopic {
		return fmt.Errorf("StateTopic and CountTopic are both %q", c.StateTopic)
	}
	if c.MQTT.Broker == "" && c.Redis.Addr == "" {
		return ErrNoSource
	}
	return nil
}
