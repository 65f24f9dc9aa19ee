package picker

import "github.com/gridpick/gridpick/internal/dataset"

// ItemSelected is published when the user activates an item. Payload is
// whatever the configured payload constructor built; copy/paste side effects
// belong to subscribers, not to the picker.
type ItemSelected struct {
	Item    dataset.Item
	Payload interface{}
}

// BackRequested is published when the user activates the back affordance.
type BackRequested struct{}

// Subscription identifies a registered listener.
type Subscription int

type notifier struct {
	itemSubs map[Subscription]func(ItemSelected)
	backSubs map[Subscription]func(BackRequested)
	nextSub  Subscription
}

func newNotifier() *notifier {
	return &notifier{
		itemSubs: make(map[Subscription]func(ItemSelected)),
		backSubs: make(map[Subscription]func(BackRequested)),
	}
}

func (n *notifier) subscribeItem(fn func(ItemSelected)) Subscription {
	n.nextSub++
	n.itemSubs[n.nextSub] = fn
	return n.nextSub
}

func (n *notifier) subscribeBack(fn func(BackRequested)) Subscription {
	n.nextSub++
	n.backSubs[n.nextSub] = fn
	return n.nextSub
}

func (n *notifier) unsubscribe(sub Subscription) {
	delete(n.itemSubs, sub)
	delete(n.backSubs, sub)
}

func (n *notifier) publishItem(evt ItemSelected) {
	for _, fn := range n.itemSubs {
		fn(evt)
	}
}

func (n *notifier) publishBack(evt BackRequested) {
	for _, fn := range n.backSubs {
		fn(evt)
	}
}
