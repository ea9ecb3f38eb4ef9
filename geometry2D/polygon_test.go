package geometry2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func poly(xy ...float64) (pg Polygon) {
	for i := 0; i < len(xy); i += 2 {
		pg = append(pg, NewPoint(xy[i], xy[i+1]))
	}
	return
}

func TestPolygonArea(t *testing.T) {
	sq := poly(0, 0, 2, 0, 2, 2, 0, 2)
	assert.InDelta(t, 4, sq.SignedArea(), 1e-12)
	assert.True(t, sq.IsCCW())
	assert.InDelta(t, 8, sq.Perimeter(), 1e-12)

	cw := poly(0, 0, 0, 2, 2, 2, 2, 0)
	assert.InDelta(t, -4, cw.SignedArea(), 1e-12)
	assert.False(t, cw.IsCCW())
}

func TestBoundingBox(t *testing.T) {
	box := NewBoundingBox(poly(1, 5, -2, 3, 4, -1))
	assert.Equal(t, [2]float64{-2, -1}, box.XMin)
	assert.Equal(t, [2]float64{4, 5}, box.XMax)
	assert.Nil(t, NewBoundingBox(nil))

	other := NewBoundingBox(poly(4.5, 0, 6, 1))
	assert.False(t, box.Overlaps(other, 0))
	assert.True(t, box.Overlaps(other, 0.5))
	assert.True(t, other.Overlaps(box, 0.5))
}

func TestSegmentsIntersect(t *testing.T) {
	var (
		o   = NewPoint(0, 0)
		a   = NewPoint(2, 2)
		b   = NewPoint(2, 0)
		c   = NewPoint(0, 2)
		d   = NewPoint(1, 1)
		e   = NewPoint(3, 3)
		f   = NewPoint(5, 5)
		tol = 1e-12
	)
	assert.True(t, SegmentsIntersect(o, a, b, c, tol), "proper crossing")
	assert.True(t, SegmentsIntersect(o, a, d, b, tol), "touching at an end point")
	assert.True(t, SegmentsIntersect(o, e, d, f, tol), "collinear overlap")
	assert.False(t, SegmentsIntersect(o, d, e, f, tol), "collinear and disjoint")
	assert.False(t, SegmentsIntersect(o, b, c, a, tol), "parallel")
}

func TestSelfIntersection(t *testing.T) {
	_, _, ok := poly(0, 0, 2, 0, 2, 2, 0, 2).SelfIntersection(1e-12)
	assert.False(t, ok)

	i, j, ok := poly(0, 0, 2, 2, 2, 0, 0, 1).SelfIntersection(1e-12)
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 2, j)

	// The third vertex doubles back along the second edge.
	_, _, ok = poly(0, 0, 2, 0, 2, 2, 2, 1, 0, 1).SelfIntersection(1e-12)
	assert.True(t, ok)

	// Collinear consecutive vertices are not a fold.
	_, _, ok = poly(0, 0, 1, 0, 2, 0, 2, 2, 0, 2).SelfIntersection(1e-12)
	assert.False(t, ok)
}

func TestContainsAndCrosses(t *testing.T) {
	outer := poly(0, 0, 10, 0, 10, 10, 0, 10)
	assert.True(t, outer.Contains(NewPoint(5, 5)))
	assert.False(t, outer.Contains(NewPoint(15, 5)))

	inner := poly(2, 2, 4, 2, 4, 4, 2, 4)
	assert.False(t, outer.Crosses(inner, 1e-12))
	assert.True(t, outer.Crosses(poly(8, 8, 12, 8, 12, 12, 8, 12), 1e-12))

	assert.False(t, outer.Crosses(poly(20, 20, 30, 20, 30, 30), 1e-12), "disjoint boxes")
	assert.False(t, outer.Crosses(nil, 1e-12))
	assert.InDelta(t, 5, NewPoint(0, 0).Distance(NewPoint(3, 4)), 1e-12)
}
