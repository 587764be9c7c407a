package dashboard

import (
	"errors"
	"sync"
)

// State is the load state of one panel.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	}
	return "unknown"
}

// Panel holds either the data of one dashboard panel or the message of the
// error that kept it from loading. A new Panel is Loading.
type Panel[T any] struct {
	State State
	Data  T
	Err   string
}

// Resolve moves the panel to Ready when err is nil and to Failed otherwise.
func (p *Panel[T]) Resolve(data T, err error) {
	if err != nil {
		var zero T
		p.State, p.Data, p.Err = Failed, zero, err.Error()
		return
	}
	p.State, p.Data, p.Err = Ready, data, ""
}

// Action is the in-flight operation on a busy item.
type Action string

const (
	Saving   Action = "saving"
	Deleting Action = "deleting"
)

// ErrBusy is returned when an item already has an action in flight.
var ErrBusy = errors.New("dashboard: item is busy")

// Busy tracks per-item actions so that overlapping actions on the same
// item are rejected. The zero value is ready to use.
type Busy struct {
	mu    sync.Mutex
	items map[string]Action
}

// Begin marks key as busy with a. The returned func marks it ready again
// and must be called exactly once.
func (b *Busy) Begin(key string, a Action) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.items == nil {
		b.items = make(map[string]Action)
	}
	if _, busy := b.items[key]; busy {
		return nil, ErrBusy
	}
	b.items[key] = a

	return func() {
		b.mu.Lock()
		delete(b.items, key)
		b.mu.Unlock()
	}, nil
}

// State returns the action in flight for key, if any.
func (b *Busy) State(key string) (Action, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.items[key]
	return a, ok
}
