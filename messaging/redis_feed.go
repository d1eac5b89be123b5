package messaging

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisFeed carries change signals between service instances over one Redis
// pub/sub channel and hands them to a local MemoryFeed. Every instance, the
// publisher included, receives each signal through Redis.
type RedisFeed struct {
	client  *redis.Client
	channel string
	pubsub  *redis.PubSub
	local   *MemoryFeed
	done    chan struct{}
}

// NewRedisFeed subscribes to channel and starts relaying signals
func NewRedisFeed(ctx context.Context, client *redis.Client, channel string) (*RedisFeed, error) {
	ps := client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Wrapf(err, "failed to subscribe to redis channel %s", channel)
	}

	f := &RedisFeed{
		client:  client,
		channel: channel,
		pubsub:  ps,
		local:   NewMemoryFeed(),
		done:    make(chan struct{}),
	}
	go f.relay()
	return f, nil
}

func (f *RedisFeed) relay() {
	defer close(f.done)
	for msg := range f.pubsub.Channel() {
		_ = f.local.Publish(context.Background(), msg.Payload)
	}
	zap.S().Infow("redis feed relay stopped", "channel", f.channel)
}

// Publish sends topic to every instance listening on the channel
func (f *RedisFeed) Publish(ctx context.Context, topic string) error {
	return f.client.Publish(ctx, f.channel, topic).Err()
}

// Subscribe registers a local receiver for topic
func (f *RedisFeed) Subscribe(topic string) (<-chan struct{}, func()) {
	return f.local.Subscribe(topic)
}

// Close stops the relay. Local subscribers stay registered but receive nothing more.
func (f *RedisFeed) Close() error {
	err := f.pubsub.Close()
	<-f.done
	return err
}
