package engine

import (
	"time"

	"github.com/ethereum/go-ethereum/event"

	"github.com/aethermon/ctxd/types/label"
)

// Transition is emitted whenever a tracker's label changes.
type Transition struct {
	From label.Label
	To   label.Label
	Fork Fork
	At   time.Time
}

type transitionFeed struct {
	feed event.FeedOf[Transition]
}

func (f *transitionFeed) send(t Transition) {
	f.feed.Send(t)
}

// SubscribeTransitions delivers every label change to ch until the
// subscription is unsubscribed.
func (e *Engine) SubscribeTransitions(ch chan<- Transition) event.Subscription {
	return e.feed.feed.Subscribe(ch)
}
