package team

import (
	"errors"
	"fmt"
)

// ErrNotSquare is returned when a row slice does not describe a square matrix.
var ErrNotSquare = errors.New("team: compatibility matrix is not square")

// SymMatrix is a dense square matrix of pairwise compatibility scores.
//
// Set writes both (i,j) and (j,i) so the matrix stays symmetric under normal
// use. Noise injection may write single cells via SetAsym and must call
// Symmetrize afterwards to restore the invariant. The diagonal is unused by
// the engine and is never read.
type SymMatrix struct {
	n     int
	cells []float64 // row-major, n*n
}

// NewSymMatrix returns an n×n matrix with every cell set to fill.
func NewSymMatrix(n int, fill float64) *SymMatrix {
	m := &SymMatrix{n: n, cells: make([]float64, n*n)}
	if fill != 0 {
		for i := range m.cells {
			m.cells[i] = fill
		}
	}
	return m
}

// FromRows builds a SymMatrix from a slice of rows.
// Returns ErrNotSquare if any row length differs from the row count.
// Symmetry of the input is not checked; the engine only reads the upper
// triangle, matching how callers typically populate the matrix.
func FromRows(rows [][]float64) (*SymMatrix, error) {
	n := len(rows)
	m := NewSymMatrix(n, 0)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
		copy(m.cells[i*n:(i+1)*n], row)
	}
	return m, nil
}

// Size returns the node count n.
func (m *SymMatrix) Size() int { return m.n }

// At returns the cell at (i, j).
func (m *SymMatrix) At(i, j int) float64 { return m.cells[i*m.n+j] }

// Set writes v to both (i, j) and (j, i).
func (m *SymMatrix) Set(i, j int, v float64) {
	m.cells[i*m.n+j] = v
	m.cells[j*m.n+i] = v
}

// SetAsym writes v to the single cell (i, j), breaking symmetry.
// Callers must re-establish the invariant with Symmetrize.
func (m *SymMatrix) SetAsym(i, j int, v float64) { m.cells[i*m.n+j] = v }

// Symmetrize replaces the matrix with (S + Sᵗ)/2, averaging each cell with
// its mirror.
func (m *SymMatrix) Symmetrize() {
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			avg := (m.cells[i*m.n+j] + m.cells[j*m.n+i]) / 2
			m.cells[i*m.n+j] = avg
			m.cells[j*m.n+i] = avg
		}
	}
}

// Clip01 clamps every cell into [0, 1].
func (m *SymMatrix) Clip01() {
	for i, v := range m.cells {
		if v < 0 {
			m.cells[i] = 0
		} else if v > 1 {
			m.cells[i] = 1
		}
	}
}

// Clone returns a deep copy.
func (m *SymMatrix) Clone() *SymMatrix {
	cp := &SymMatrix{n: m.n, cells: make([]float64, len(m.cells))}
	copy(cp.cells, m.cells)
	return cp
}

// Without returns a new matrix with row and column idx deleted.
func (m *SymMatrix) Without(idx int) *SymMatrix {
	out := NewSymMatrix(m.n-1, 0)
	oi := 0
	for i := 0; i < m.n; i++ {
		if i == idx {
			continue
		}
		oj := 0
		for j := 0; j < m.n; j++ {
			if j == idx {
				continue
			}
			out.cells[oi*out.n+oj] = m.cells[i*m.n+j]
			oj++
		}
		oi++
	}
	return out
}
