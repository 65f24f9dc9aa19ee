package recents

import (
	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/logging/events"
)

// Store is the bounded, recency-ordered item list backing the virtual
// Recents category. Implementations notify subscribers after every mutation;
// the notification carries no payload, subscribers pull fresh state via
// Recents.
type Store interface {
	Recents() []dataset.Item
	Add(item dataset.Item)
	Subscribe(fn func()) Subscription
	Unsubscribe(sub Subscription)
}

// Subscription identifies a registered change listener.
type Subscription int

// DefaultLimit bounds the recents list when no explicit limit is configured.
const DefaultLimit = 36

type memoryStore struct {
	limit   int
	items   []dataset.Item
	subs    map[Subscription]func()
	nextSub Subscription
}

// NewMemoryStore returns an in-process Store with no persistence.
func NewMemoryStore(limit int) Store {
	return newMemoryStore(limit)
}

func newMemoryStore(limit int) *memoryStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &memoryStore{
		limit: limit,
		subs:  make(map[Subscription]func()),
	}
}

func (s *memoryStore) Recents() []dataset.Item {
	out := make([]dataset.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *memoryStore) Add(item dataset.Item) {
	s.bump(item)
	events.Recents.Added(item.Key(), len(s.items))
	s.notify()
}

// bump moves the item to the front, deduplicating by key and evicting past
// the limit.
func (s *memoryStore) bump(item dataset.Item) {
	key := item.Key()
	kept := make([]dataset.Item, 0, len(s.items)+1)
	kept = append(kept, item)
	for _, existing := range s.items {
		if existing.Key() == key {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) > s.limit {
		kept = kept[:s.limit]
	}
	s.items = kept
}

func (s *memoryStore) Subscribe(fn func()) Subscription {
	s.nextSub++
	s.subs[s.nextSub] = fn
	return s.nextSub
}

func (s *memoryStore) Unsubscribe(sub Subscription) {
	delete(s.subs, sub)
}

func (s *memoryStore) notify() {
	events.Recents.Changed(len(s.items))
	for _, fn := range s.subs {
		fn()
	}
}
