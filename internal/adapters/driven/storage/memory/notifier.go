package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/redline/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// Event is one recorded change notification.
type Event struct {
	PageID string
	Editor string
}

// Notifier records published events in memory. Useful for tests and
// single-process setups that poll instead of subscribing.
type Notifier struct {
	mu     sync.Mutex
	events []Event
}

// NewNotifier creates a recording notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Publish records the event.
func (n *Notifier) Publish(_ context.Context, pageID, editor string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Event{PageID: pageID, Editor: editor})
	return nil
}

// Events returns a copy of everything published so far.
func (n *Notifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Event, len(n.events))
	copy(out, n.events)
	return out
}
