package ledger

import (
	"sync"
	"time"

	"tally/internal/core"
)

// EventKind names a committed ledger state transition.
type EventKind string

const (
	EventExpenseAdded   EventKind = "expense_added"
	EventExpenseUpdated EventKind = "expense_updated"
	EventExpenseDeleted EventKind = "expense_deleted"
	EventIncomeAdded    EventKind = "income_added"
	EventIncomeUpdated  EventKind = "income_updated"
	EventIncomeDeleted  EventKind = "income_deleted"
	EventMonthClosed    EventKind = "month_closed"
	EventBackupEnabled  EventKind = "backup_enabled"
)

// Event is published after a mutation has been committed to the store.
type Event struct {
	Kind   EventKind
	Period core.PeriodKey
	ID     string
	At     time.Time
}

// notifier fans committed events out to subscribers. Sends never block: a
// subscriber that falls behind misses events rather than stalling mutations.
type notifier struct {
	mu   sync.Mutex
	subs []chan Event
}

// Subscribe returns a channel receiving future events. The buffer bounds how
// far a consumer may lag before events are dropped for it.
func (n *notifier) Subscribe(buffer int) <-chan Event {
	ch := make(chan Event, buffer)
	n.mu.Lock()
	n.subs = append(n.subs, ch)
	n.mu.Unlock()
	return ch
}

func (n *notifier) publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
