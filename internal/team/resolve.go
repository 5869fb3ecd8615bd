package team

import "fmt"

// NodeRow is one row of the node table a dashboard submits.
type NodeRow struct {
	Name        string  `yaml:"name" json:"name"`
	Integration float64 `yaml:"l" json:"l"`
	Capacity    float64 `yaml:"v" json:"v"`
	Resistance  float64 `yaml:"r" json:"r"`
}

// EdgeRow is one row of the edge table: a compatibility score between two
// named members.
type EdgeRow struct {
	Source string  `yaml:"source" json:"source"`
	Target string  `yaml:"target" json:"target"`
	Compat float64 `yaml:"s" json:"s"`
}

// Resolve builds a Team from row tables.
//
// Edges that reference a name absent from the node table are silently
// dropped — this is the documented defensive behavior of the presentation
// boundary, not an engine error. The number of dropped edges is returned so
// callers can surface it. Pairs with no edge row keep defaultCompat.
//
// Duplicate node names are rejected: the matrix is indexed by name, so a
// duplicate would make edge resolution ambiguous.
func Resolve(nodes []NodeRow, edges []EdgeRow, defaultCompat float64) (*Team, int, error) {
	n := len(nodes)
	members := make([]Member, n)
	index := make(map[string]int, n)
	for i, row := range nodes {
		if _, ok := index[row.Name]; ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrDuplicateName, row.Name)
		}
		index[row.Name] = i
		members[i] = Member{
			Name:        row.Name,
			Integration: row.Integration,
			Capacity:    row.Capacity,
			Resistance:  row.Resistance,
		}
	}

	compat := NewSymMatrix(n, defaultCompat)
	dropped := 0
	for _, e := range edges {
		i, okI := index[e.Source]
		j, okJ := index[e.Target]
		if !okI || !okJ || i == j {
			dropped++
			continue
		}
		compat.Set(i, j, e.Compat)
	}

	return &Team{Members: members, Compat: compat}, dropped, nil
}
