package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestResolveCurve(t *testing.T) {
	m := newPlate(t)

	s, err := m.ResolveCurve(12)
	require.NoError(t, err)
	assert.Equal(t, Segment{From: r3.Vec{X: 8}, To: r3.Vec{}}, s)
	assert.InDelta(t, 8, s.Length(), 1e-12)

	s, err = m.ResolveEdge(-12)
	require.NoError(t, err)
	assert.Equal(t, Segment{From: r3.Vec{}, To: r3.Vec{X: 8}}, s)

	_, err = m.ResolveCurve(99)
	assert.ErrorIs(t, err, ErrReference)

	require.NoError(t, m.AddLine(40, 1, 77))
	_, err = m.ResolveCurve(40)
	assert.ErrorIs(t, err, ErrReference)
	assert.Contains(t, err.Error(), "Point(77)")
}

func TestArc(t *testing.T) {
	m := newPlate(t)
	s, err := m.ResolveCurve(18)
	require.NoError(t, err)
	arc, ok := s.(Arc)
	require.True(t, ok)

	assert.InDelta(t, 0.5, arc.Radius(), 1e-12)
	assert.InDelta(t, 0.5, arc.EndRadius(), 1e-12)
	assert.InDelta(t, math.Pi/2, arc.Sweep(), 1e-12)
	assert.InDelta(t, math.Pi/4, arc.Length(), 1e-12)

	pts := arc.Sample(8)
	require.Len(t, pts, 9)
	assert.Equal(t, arc.From, pts[0])
	assert.Equal(t, arc.To, pts[8])
	for _, p := range pts {
		assert.InDelta(t, 0.5, r3.Norm(r3.Sub(p, arc.Center)), 1e-12)
	}

	rev, err := m.ResolveEdge(-18)
	require.NoError(t, err)
	assert.Equal(t, Arc{From: arc.To, Center: arc.Center, To: arc.From}, rev)
}

func TestLoopVertices(t *testing.T) {
	m := newPlate(t)
	verts, err := m.LoopVertices(22)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 11, 10, 9, 8, 7, 5, 4, 2}, verts)

	t.Run("Reversed", func(t *testing.T) {
		require.NoError(t, m.AddLoop(50, -21, -20, -19, -18, -17, -16, -15, -14, -13, -12))
		verts, err := m.LoopVertices(50)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 4, 5, 7, 8, 9, 10, 11, 0}, verts)
	})
	t.Run("Gap", func(t *testing.T) {
		require.NoError(t, m.AddLoop(51, 12, 14, 15))
		_, err := m.LoopVertices(51)
		assert.ErrorIs(t, err, ErrGeometry)
		assert.Contains(t, err.Error(), "edge 14 starts at Point(11) but edge 12 ends at Point(0)")
	})
	t.Run("Open", func(t *testing.T) {
		require.NoError(t, m.AddLoop(52, 12, 13, 14))
		_, err := m.LoopVertices(52)
		assert.ErrorIs(t, err, ErrGeometry)
		assert.Contains(t, err.Error(), "not closed")
	})
	t.Run("UndeclaredCurve", func(t *testing.T) {
		require.NoError(t, m.AddLoop(53, 12, 99))
		_, err := m.LoopVertices(53)
		assert.ErrorIs(t, err, ErrReference)
	})
	t.Run("UndeclaredLoop", func(t *testing.T) {
		_, err := m.LoopVertices(404)
		assert.ErrorIs(t, err, ErrReference)
	})
}

func TestLoopPolyline(t *testing.T) {
	m := newPlate(t)
	pts, err := m.LoopPolyline(22, 4)
	require.NoError(t, err)
	// 8 straight edges contribute their start point, 2 arcs 4 points each.
	assert.Len(t, pts, 8+2*4)
	assert.Equal(t, r3.Vec{X: 8}, pts[0])
}
