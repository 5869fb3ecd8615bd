package store

import (
	"testing"
	"time"
)

// fixedClock lets tests advance the store's notion of time by hand.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*Store, *fixedClock) {
	clock := &fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := New(ttl)
	s.now = clock.now
	return s, clock
}

func snap(team string) *Snapshot {
	return &Snapshot{Team: team, Margin: 1, Stable: true}
}

func TestStore_PutGet(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	s.Put(snap("alpha"))
	e, ok := s.Get("alpha")
	if !ok {
		t.Fatal("Get(alpha) = miss, want hit")
	}
	if e.Snapshot.Team != "alpha" || !e.UpdatedAt.Equal(clock.t) {
		t.Errorf("entry = %+v", e)
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	s.Put(snap("alpha"))
	clock.advance(10 * time.Second)
	newer := snap("alpha")
	newer.Margin = 2
	s.Put(newer)

	e, _ := s.Get("alpha")
	if e.Snapshot.Margin != 2 {
		t.Errorf("Margin = %v, want 2", e.Snapshot.Margin)
	}
	if !e.UpdatedAt.Equal(clock.t) {
		t.Errorf("UpdatedAt = %v, want %v", e.UpdatedAt, clock.t)
	}
}

func TestStore_ListSkipsStale(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	s.Put(snap("old"))
	clock.advance(2 * time.Minute)
	s.Put(snap("fresh"))

	entries := s.List()
	if len(entries) != 1 {
		t.Fatalf("List() returned %d entries, want 1", len(entries))
	}
	if entries[0].Snapshot.Team != "fresh" {
		t.Errorf("List() kept %q, want fresh", entries[0].Snapshot.Team)
	}
}

func TestStore_Evict(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	s.Put(snap("old"))
	clock.advance(30 * time.Second)
	s.Put(snap("young"))
	clock.advance(45 * time.Second)

	// "old" is 75s stale, "young" only 45s.
	if n := s.Evict(clock.t); n != 1 {
		t.Fatalf("Evict() = %d, want 1", n)
	}
	if _, ok := s.Get("old"); ok {
		t.Error("old still present after eviction")
	}
	if _, ok := s.Get("young"); !ok {
		t.Error("young evicted too early")
	}
}

func TestSnapshot_MaxResistance(t *testing.T) {
	s := &Snapshot{Members: []MemberState{
		{Name: "Sora", Resistance: 0.2},
		{Name: "Yuki", Resistance: 1.5},
		{Name: "Kai", Resistance: 0.8},
	}}
	name, r := s.MaxResistance()
	if name != "Yuki" || r != 1.5 {
		t.Errorf("MaxResistance() = (%q, %v), want (Yuki, 1.5)", name, r)
	}
}

func TestSnapshot_Leader(t *testing.T) {
	s := &Snapshot{Members: []MemberState{
		{Name: "Kai", Gravity: 666.7},
		{Name: "Sora", Gravity: 3840},
		{Name: "Yuki", Gravity: 62.5},
	}}
	leader, ok := s.Leader()
	if !ok || leader.Name != "Sora" {
		t.Errorf("Leader() = (%+v, %v), want Sora", leader, ok)
	}

	empty := &Snapshot{}
	if _, ok := empty.Leader(); ok {
		t.Error("Leader() on empty snapshot reported a leader")
	}
}
