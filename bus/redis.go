package bus

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
}

// RedisSource subscribes to the command topics as Redis pub/sub channels.
type RedisSource struct {
	client *redis.Client
	h      *Handler
	log    logrus.FieldLogger

	ps   *redis.PubSub
	done chan struct{}
}

func NewRedisSource(client *redis.Client, h *Handler) *RedisSource {
	return &RedisSource{
		client: client,
		h:      h,
		log:    h.Log.WithField("Redis", client.Options().Addr),
	}
}

// Start subscribes and begins delivering messages in the background.
func (s *RedisSource) Start(ctx context.Context) error {
	topics := s.h.Topics.List()
	ps := s.client.Subscribe(ctx, topics...)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return fmt.Errorf("subscribe: %w", err)
	}
	s.ps = ps
	s.done = make(chan struct{})
	for _, t := range topics {
		s.log.WithField("Topic", t).Infoln("subscribed")
	}

	go s.loop(ps.Channel())
	return nil
}

func (s *RedisSource) loop(msgs <-chan *redis.Message) {
	defer close(s.done)
	for m := range msgs {
		s.h.Handle(m.Channel, []byte(m.Payload))
	}
}

// Stop unsubscribes and waits for the delivery loop to exit.
func (s *RedisSource) Stop() error {
	if s.ps == nil {
		return nil
	}
	err := s.ps.Close()
	<-s.done
	return err
}

// PublishRedis publishes a single message on channel topic.
func PublishRedis(ctx context.Context, client *redis.Client, topic, payload string) error {
	return client.Publish(ctx, topic, payload).Err()
}
