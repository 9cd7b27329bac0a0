package handlers

import (
	"sync"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/engine"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
)

// SignalSnapshot is the decision state produced by the most recent
// signal evaluation.
type SignalSnapshot struct {
	Date      time.Time                  `json:"date"`
	Decisions map[string]signal.Decision `json:"decisions"`
	Selected  []string                   `json:"selected"`
}

// ResultStore is the in-memory handoff between the engine (or the
// scheduled signal job) and the API handlers. Writers replace whole
// snapshots, readers get the pointer; neither side mutates shared state.
type ResultStore struct {
	mu      sync.RWMutex
	result  *engine.Result
	signals *SignalSnapshot
}

// NewResultStore creates an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// SetResult publishes a finished run.
func (s *ResultStore) SetResult(r *engine.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
}

// Result returns the latest run, or nil if none has completed.
func (s *ResultStore) Result() *engine.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// SetSignals publishes a signal snapshot.
func (s *ResultStore) SetSignals(snap *SignalSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = snap
}

// Signals returns the latest signal snapshot, or nil.
func (s *ResultStore) Signals() *SignalSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signals
}
