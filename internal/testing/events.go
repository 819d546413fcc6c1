package testing

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// EventLog records side effects in the order they happened.
type EventLog struct {
	mu     sync.Mutex
	events []string
}

// NewEventLog creates an empty EventLog.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add appends a formatted event.
func (l *EventLog) Add(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

// Events returns a copy of all events.
func (l *EventLog) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// WithPrefix returns the events starting with prefix.
func (l *EventLog) WithPrefix(prefix string) []string {
	var out []string
	for _, e := range l.Events() {
		if strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// IndexOf returns the position of the first event equal to event, or -1.
func (l *EventLog) IndexOf(event string) int {
	return slices.Index(l.Events(), event)
}
