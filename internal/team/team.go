package team

import (
	"errors"
	"fmt"
)

// Errors returned by Validate and the resolution boundary.
var (
	ErrSizeMismatch  = errors.New("team: member count and matrix size disagree")
	ErrDuplicateName = errors.New("team: duplicate member name")
)

// Member is one team member. Gravity is intentionally absent: it is a pure
// function of the three attributes and is recomputed by the engine on every
// evaluation, never stored.
type Member struct {
	Name string `yaml:"name" json:"name"`

	// Integration (L): integration level / skill / will. Non-negative.
	Integration float64 `yaml:"l" json:"l"`

	// Capacity (V): inner slack / time / vacuum. Non-negative.
	Capacity float64 `yaml:"v" json:"v"`

	// Resistance (R): ego / fear / friction. Non-negative.
	Resistance float64 `yaml:"r" json:"r"`
}

// Team is one snapshot of a team: its members plus the pairwise
// compatibility matrix over them, indexed in member order.
type Team struct {
	Members []Member   `yaml:"members" json:"members"`
	Compat  *SymMatrix `yaml:"-" json:"-"`
}

// Validate checks structural consistency: the matrix dimension must equal
// the member count and member names must be unique.
func (t *Team) Validate() error {
	if t.Compat == nil || t.Compat.Size() != len(t.Members) {
		got := 0
		if t.Compat != nil {
			got = t.Compat.Size()
		}
		return fmt.Errorf("%w: %d members, %d×%d matrix", ErrSizeMismatch, len(t.Members), got, got)
	}
	seen := make(map[string]struct{}, len(t.Members))
	for _, m := range t.Members {
		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}

// Arrays lowers the member attributes into the parallel slices the engine
// consumes: L (integration), V (capacity), R (resistance).
func (t *Team) Arrays() (l, v, r []float64) {
	n := len(t.Members)
	l = make([]float64, n)
	v = make([]float64, n)
	r = make([]float64, n)
	for i, m := range t.Members {
		l[i] = m.Integration
		v[i] = m.Capacity
		r[i] = m.Resistance
	}
	return l, v, r
}

// Names returns the member names in index order.
func (t *Team) Names() []string {
	out := make([]string, len(t.Members))
	for i, m := range t.Members {
		out[i] = m.Name
	}
	return out
}

// Clone returns a deep copy. Perturbation scenarios edit the copy so the
// base snapshot stays untouched.
func (t *Team) Clone() *Team {
	members := make([]Member, len(t.Members))
	copy(members, t.Members)
	return &Team{Members: members, Compat: t.Compat.Clone()}
}

// Without returns a new Team with member idx removed, including its row and
// column of the compatibility matrix.
func (t *Team) Without(idx int) *Team {
	members := make([]Member, 0, len(t.Members)-1)
	for i, m := range t.Members {
		if i != idx {
			members = append(members, m)
		}
	}
	return &Team{Members: members, Compat: t.Compat.Without(idx)}
}
