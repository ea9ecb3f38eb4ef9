package geometry2D

import (
	"math"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point {
	return Point{X: [2]float64{x, y}}
}

func (p Point) Minus(q Point) Point {
	return Point{X: [2]float64{p.X[0] - q.X[0], p.X[1] - q.X[1]}}
}

func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X[0]-q.X[0], p.X[1]-q.X[1])
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(Geometry []Point) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = new(BoundingBox)
	Box.XMin, Box.XMax = Geometry[0].X, Geometry[0].X
	for _, point := range Geometry {
		for i := 0; i < 2; i++ {
			Box.XMin[i] = math.Min(Box.XMin[i], point.X[i])
			Box.XMax[i] = math.Max(Box.XMax[i], point.X[i])
		}
	}
	return Box
}

// Overlaps reports whether the boxes share a point once grown by pad.
func (bb *BoundingBox) Overlaps(o *BoundingBox, pad float64) bool {
	for i := 0; i < 2; i++ {
		if bb.XMin[i] > o.XMax[i]+pad || o.XMin[i] > bb.XMax[i]+pad {
			return false
		}
	}
	return true
}

// Orient2D is twice the signed area of triangle a-b-c: positive when the
// turn a->b->c is counter-clockwise, negative when clockwise.
func Orient2D(a, b, c Point) float64 {
	return (b.X[0]-a.X[0])*(c.X[1]-a.X[1]) - (c.X[0]-a.X[0])*(b.X[1]-a.X[1])
}

func onSegment(p, a, b Point, tol float64) bool {
	return p.X[0] >= math.Min(a.X[0], b.X[0])-tol && p.X[0] <= math.Max(a.X[0], b.X[0])+tol &&
		p.X[1] >= math.Min(a.X[1], b.X[1])-tol && p.X[1] <= math.Max(a.X[1], b.X[1])+tol
}

// SegmentsIntersect reports whether the closed segments p1-p2 and q1-q2 share
// at least one point, including touching and collinear overlap.
func SegmentsIntersect(p1, p2, q1, q2 Point, tol float64) bool {
	var (
		d1 = Orient2D(q1, q2, p1)
		d2 = Orient2D(q1, q2, p2)
		d3 = Orient2D(p1, p2, q1)
		d4 = Orient2D(p1, p2, q2)
	)
	sign := func(v float64) int {
		switch {
		case v > tol:
			return 1
		case v < -tol:
			return -1
		}
		return 0
	}
	s1, s2, s3, s4 := sign(d1), sign(d2), sign(d3), sign(d4)
	if s1*s2 < 0 && s3*s4 < 0 {
		return true
	}
	switch {
	case s1 == 0 && onSegment(p1, q1, q2, tol):
		return true
	case s2 == 0 && onSegment(p2, q1, q2, tol):
		return true
	case s3 == 0 && onSegment(q1, p1, p2, tol):
		return true
	case s4 == 0 && onSegment(q2, p1, p2, tol):
		return true
	}
	return false
}

// Polygon is a closed polyline; the closing edge from the last vertex back to
// the first is implied.
type Polygon []Point

// SignedArea is positive for a counter-clockwise polygon.
func (pg Polygon) SignedArea() (area float64) {
	n := len(pg)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pg[i].X[0]*pg[j].X[1] - pg[j].X[0]*pg[i].X[1]
	}
	return 0.5 * area
}

func (pg Polygon) IsCCW() bool {
	return pg.SignedArea() > 0
}

func (pg Polygon) Perimeter() (length float64) {
	n := len(pg)
	for i := 0; i < n; i++ {
		length += pg[i].Distance(pg[(i+1)%n])
	}
	return
}

// SelfIntersection returns the indices of the first pair of non-adjacent
// edges that touch, edge i running from vertex i to vertex i+1. ok is false
// for a simple polygon.
func (pg Polygon) SelfIntersection(tol float64) (i, j int, ok bool) {
	n := len(pg)
	if n < 3 {
		return 0, 0, false
	}
	for i = 0; i < n; i++ {
		a1, a2 := pg[i], pg[(i+1)%n]
		for j = i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				// Adjacent edges share a vertex; only a fold back onto the
				// previous edge counts.
				var shared, other1, other2 Point
				if j == i+1 {
					shared, other1, other2 = a2, a1, pg[(j+1)%n]
				} else {
					shared, other1, other2 = a1, a2, pg[j]
				}
				if folds(other1, shared, other2, tol) {
					return i, j, true
				}
				continue
			}
			if SegmentsIntersect(a1, a2, pg[j], pg[(j+1)%n], tol) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// folds reports whether the path a->shared->b doubles back on itself.
func folds(a, shared, b Point, tol float64) bool {
	if math.Abs(Orient2D(a, shared, b)) > tol {
		return false
	}
	u, v := a.Minus(shared), b.Minus(shared)
	return u.X[0]*v.X[0]+u.X[1]*v.X[1] > 0
}

// Contains uses the crossing number rule. The result for a point lying on
// the boundary is unspecified.
func (pg Polygon) Contains(p Point) (inside bool) {
	n := len(pg)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pg[i], pg[j]
		if (a.X[1] > p.X[1]) != (b.X[1] > p.X[1]) {
			xCross := (b.X[0]-a.X[0])*(p.X[1]-a.X[1])/(b.X[1]-a.X[1]) + a.X[0]
			if p.X[0] < xCross {
				inside = !inside
			}
		}
	}
	return
}

// Crosses reports whether any edge of pg touches any edge of other.
func (pg Polygon) Crosses(other Polygon, tol float64) bool {
	n, m := len(pg), len(other)
	if n == 0 || m == 0 || !NewBoundingBox(pg).Overlaps(NewBoundingBox(other), tol) {
		return false
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if SegmentsIntersect(pg[i], pg[(i+1)%n], other[j], other[(j+1)%m], tol) {
				return true
			}
		}
	}
	return false
}
