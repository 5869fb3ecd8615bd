// Package store keeps the latest evaluation snapshot per team in memory,
// with TTL-based eviction of teams that stop being re-evaluated.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MemberState is one member's attributes plus the gravity derived for it in
// the evaluation that produced the snapshot.
type MemberState struct {
	Name        string  `json:"name"`
	Integration float64 `json:"l"`
	Capacity    float64 `json:"v"`
	Resistance  float64 `json:"r"`
	Gravity     float64 `json:"g"`
}

// Snapshot is the stored result of one team evaluation.
type Snapshot struct {
	Team         string        `json:"team"`
	Members      []MemberState `json:"members"`
	Binding      float64       `json:"binding"`
	Friction     float64       `json:"friction"`
	Margin       float64       `json:"margin"`
	Stable       bool          `json:"stable"`
	DroppedEdges int           `json:"dropped_edges"`
}

// MaxResistance returns the largest member resistance, with its owner's name.
func (s *Snapshot) MaxResistance() (string, float64) {
	name, best := "", 0.0
	for _, m := range s.Members {
		if name == "" || m.Resistance > best {
			name, best = m.Name, m.Resistance
		}
	}
	return name, best
}

// Leader returns the member with the highest gravity.
func (s *Snapshot) Leader() (MemberState, bool) {
	if len(s.Members) == 0 {
		return MemberState{}, false
	}
	best := 0
	for i, m := range s.Members {
		if m.Gravity > s.Members[best].Gravity {
			best = i
		}
	}
	return s.Members[best], true
}

// Entry is a snapshot together with the time it was last stored.
type Entry struct {
	Snapshot  *Snapshot
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory snapshot store keyed by team name.
// A background goroutine (Run) evicts entries that have not been refreshed
// within the TTL.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

// Put stores or replaces the snapshot for snap.Team.
// Callers must not modify snap after calling Put.
func (s *Store) Put(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[snap.Team] = &Entry{Snapshot: snap, UpdatedAt: s.now()}
}

// Get returns the Entry for the given team name. The entry may be stale if
// the TTL has elapsed but eviction has not run yet.
func (s *Store) Get(name string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[name]
	return e, ok
}

// List returns all entries whose UpdatedAt is within the TTL.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Evict removes entries older than now minus TTL and returns how many were
// removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for name, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, name)
			removed++
		}
	}
	return removed
}

// Run starts the background eviction loop, ticking at half the TTL
// (minimum one second). Blocks until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale snapshots", "count", n)
			}
		}
	}
}
