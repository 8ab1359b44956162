package state

import (
	"log/slog"
	"sync"
)

// Store owns the single State of a canvas. All writes go through Dispatch;
// readers only ever get copies.
type Store struct {
	dispatchMu sync.Mutex // serialises Dispatch so observers see actions in order

	mu      sync.RWMutex
	state   State
	subs    map[int]func(View)
	nextSub int

	log *slog.Logger
}

// NewStore creates a store holding initial.
func NewStore(initial State, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state: initial.Clone(),
		subs:  make(map[int]func(View)),
		log:   logger.With("component", "store"),
	}
}

// Dispatch applies a and notifies subscribers if it took effect.
// Subscribers run on the caller's goroutine and must not call Dispatch.
func (s *Store) Dispatch(a Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next, changed := reduce(s.state, a)
	if !changed {
		s.mu.Unlock()
		s.log.Debug("action ignored", "action", a.Kind())
		return
	}
	s.state = next
	view := next.View()
	subs := make([]func(View), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	s.log.Debug("action applied",
		"action", a.Kind(),
		"paths", len(view.Paths),
		"history", view.HistoryDepth,
		"drawing", view.Drawing())

	for _, fn := range subs {
		fn(view)
	}
}

// View returns a read-only snapshot of the current state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.View()
}

// Subscribe registers fn to receive a view after every effective action.
// Subscribers are called in registration order. The returned func removes fn.
func (s *Store) Subscribe(fn func(View)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
