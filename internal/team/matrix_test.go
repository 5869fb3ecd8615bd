package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymMatrix_Fill(t *testing.T) {
	m := NewSymMatrix(3, 0.5)
	require.Equal(t, 3, m.Size())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, 0.5, m.At(i, j))
		}
	}
}

func TestSymMatrix_SetWritesBothTriangles(t *testing.T) {
	m := NewSymMatrix(3, 0)
	m.Set(0, 2, 0.8)
	assert.Equal(t, 0.8, m.At(0, 2))
	assert.Equal(t, 0.8, m.At(2, 0))
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{
		{0, 0.3},
		{0.3, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, 0.3, m.At(0, 1))
}

func TestFromRows_NotSquare(t *testing.T) {
	_, err := FromRows([][]float64{
		{0, 0.3, 0.1},
		{0.3, 0},
	})
	require.ErrorIs(t, err, ErrNotSquare)
}

func TestSymMatrix_Symmetrize(t *testing.T) {
	m := NewSymMatrix(2, 0)
	m.SetAsym(0, 1, 0.8)
	m.SetAsym(1, 0, 0.4)

	m.Symmetrize()

	assert.InDelta(t, 0.6, m.At(0, 1), 1e-12)
	assert.InDelta(t, 0.6, m.At(1, 0), 1e-12)
}

func TestSymMatrix_Clip01(t *testing.T) {
	m := NewSymMatrix(2, 0)
	m.Set(0, 1, 1.7)
	m.SetAsym(1, 0, -0.4)

	m.Clip01()

	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(1, 0))
}

func TestSymMatrix_CloneIsIndependent(t *testing.T) {
	m := NewSymMatrix(2, 0.5)
	cp := m.Clone()
	cp.Set(0, 1, 0.9)

	assert.Equal(t, 0.5, m.At(0, 1))
	assert.Equal(t, 0.9, cp.At(0, 1))
}

func TestSymMatrix_Without(t *testing.T) {
	m := NewSymMatrix(3, 0)
	m.Set(0, 1, 0.1)
	m.Set(0, 2, 0.2)
	m.Set(1, 2, 0.3)

	got := m.Without(1)

	require.Equal(t, 2, got.Size())
	// Survivors are old indices 0 and 2.
	assert.Equal(t, 0.2, got.At(0, 1))
	assert.Equal(t, 0.2, got.At(1, 0))
}
