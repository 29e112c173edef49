// Package alert raises, publishes and progresses vehicle alerts.
package alert

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ukydev/transit-fleet/internal/models"
)

// Listener receives every alert the monitor raises and every non-terminal
// lifecycle transition.
type Listener interface {
	OnAlert(ctx context.Context, kind models.AlertKind, a models.Alert) error
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(ctx context.Context, kind models.AlertKind, a models.Alert) error

func (f ListenerFunc) OnAlert(ctx context.Context, kind models.AlertKind, a models.Alert) error {
	return f(ctx, kind, a)
}

type subscription struct {
	id       uint64
	listener Listener
}

// Notifier fans alerts out to its listeners in registration order.
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewNotifier returns a notifier with the given listeners already subscribed.
func NewNotifier(listeners ...Listener) *Notifier {
	n := &Notifier{}
	for _, l := range listeners {
		n.Subscribe(l)
	}
	return n
}

// Subscribe registers l and returns a func that removes it again.
func (n *Notifier) Subscribe(l Listener) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, listener: l})

	return func() { n.remove(id) }
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return
		}
	}
}

// Len reports how many listeners are subscribed.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Notify calls every listener even when earlier ones fail and returns the
// joined failures.
func (n *Notifier) Notify(ctx context.Context, kind models.AlertKind, a models.Alert) error {
	n.mu.RLock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := s.listener.OnAlert(ctx, kind, a); err != nil {
			errs = append(errs, fmt.Errorf("listener %d: %w", s.id, err))
		}
	}
	return errors.Join(errs...)
}
