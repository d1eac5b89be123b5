package messaging

import (
	"context"
	"sync"
)

// Feed fans change signals out to live subscriptions. A signal carries no payload,
// receivers re-read the store. Signals for one receiver coalesce while it is busy.
type Feed interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(topic string) (<-chan struct{}, func())
}

// MemoryFeed is a Feed that only reaches subscribers in this process
type MemoryFeed struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

// NewMemoryFeed creates an empty in-process feed
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[chan struct{}]struct{})}
}

// Publish signals every subscriber of topic without blocking
func (f *MemoryFeed) Publish(_ context.Context, topic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
			// a signal is already pending
		}
	}
	return nil
}

// Subscribe registers a receiver for topic. The returned func releases it and is
// safe to call more than once.
func (f *MemoryFeed) Subscribe(topic string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	if f.subs[topic] == nil {
		f.subs[topic] = make(map[chan struct{}]struct{})
	}
	f.subs[topic][ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs[topic], ch)
			if len(f.subs[topic]) == 0 {
				delete(f.subs, topic)
			}
		})
	}
}

// Subscribers returns how many receivers are registered for topic
func (f *MemoryFeed) Subscribers(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[topic])
}
