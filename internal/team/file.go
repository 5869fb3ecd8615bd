package team

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileDoc is the YAML layout of a team definition file.
type fileDoc struct {
	Members       []NodeRow `yaml:"members"`
	Edges         []EdgeRow `yaml:"edges"`
	DefaultCompat *float64  `yaml:"default_compat"`
}

// DefaultCompat is the compatibility assumed for member pairs that have no
// explicit edge. Neutral midpoint of the [0,1] range.
const DefaultCompat = 0.5

// LoadFile reads a YAML team definition and resolves it into a Team.
// Edges with unknown member names are dropped, mirroring the dashboard
// boundary behavior; the dropped count is returned alongside the team.
func LoadFile(path string) (*Team, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("team: read file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("team: parse yaml: %w", err)
	}
	if len(doc.Members) == 0 {
		return nil, 0, fmt.Errorf("team: %s defines no members", path)
	}

	def := DefaultCompat
	if doc.DefaultCompat != nil {
		def = *doc.DefaultCompat
	}

	t, dropped, err := Resolve(doc.Members, doc.Edges, def)
	if err != nil {
		return nil, 0, fmt.Errorf("team: %s: %w", path, err)
	}
	return t, dropped, nil
}
