package events

import "sync"

// Bus fans a letters-changed signal out to every same-process
// subscriber. It replaces the original ambient broadcast with an
// explicit subscribe/publish API; there is no payload, a signal only
// means "refetch".
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

// NewBus creates an empty Bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan struct{})}
}

// Subscribe returns a channel that receives a value after each Publish,
// and a cancel func that closes the channel and removes the
// subscription. The channel is buffered so a slow subscriber collapses
// bursts into a single pending signal instead of blocking publishers.
func (b *Bus) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish signals every subscriber without blocking
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default: // a signal is already pending
		}
	}
}
