package solo

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

const defaultJournalLimit = 1000

// EventKind classifies a lifecycle journal entry
type EventKind string

const (
	// EventClaimed records a container winning self-registration
	EventClaimed EventKind = "claimed"
	// EventDuplicate records a candidate discarded without running Init
	EventDuplicate EventKind = "duplicate"
	// EventReleased records the recognized holder being destroyed
	EventReleased EventKind = "released"
	// EventShutdown records the per-type latch flipping
	EventShutdown EventKind = "shutdown"
)

// Event is one lifecycle transition observed by the registry
type Event struct {
	Seq  uint64
	Kind EventKind
	Type reflect.Type
	At   time.Time
}

// Journal is a bounded, append-only record of lifecycle transitions. When
// the limit is exceeded the oldest events are evicted first.
type Journal struct {
	mu     sync.RWMutex
	events []Event
	limit  int
	seq    atomic.Uint64
}

func newJournal(limit int) *Journal {
	if limit < 1 {
		limit = defaultJournalLimit
	}
	return &Journal{
		events: make([]Event, 0, 32),
		limit:  limit,
	}
}

func (j *Journal) record(kind EventKind, t reflect.Type) {
	e := Event{
		Seq:  j.seq.Add(1),
		Kind: kind,
		Type: t,
		At:   time.Now(),
	}

	j.mu.Lock()
	j.events = append(j.events, e)
	if len(j.events) > j.limit {
		over := len(j.events) - j.limit
		j.events = append(j.events[:0:0], j.events[over:]...)
	}
	j.mu.Unlock()
}

// Events returns a copy of the retained events in order of occurrence
func (j *Journal) Events() []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	result := make([]Event, len(j.events))
	copy(result, j.events)
	return result
}

// Filter returns the retained events matching the predicate
func (j *Journal) Filter(predicate func(Event) bool) []Event {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var result []Event
	for _, e := range j.events {
		if predicate(e) {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of retained events
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.events)
}
