package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Shape is a curve with its point references replaced by coordinates.
type Shape interface {
	Start() r3.Vec
	End() r3.Vec
	Length() float64
	// Sample returns n+1 points from Start to End inclusive.
	Sample(n int) []r3.Vec
}

type Segment struct {
	From, To r3.Vec
}

func (s Segment) Start() r3.Vec   { return s.From }
func (s Segment) End() r3.Vec     { return s.To }
func (s Segment) Length() float64 { return r3.Norm(r3.Sub(s.To, s.From)) }

func (s Segment) Sample(n int) []r3.Vec {
	if n < 1 {
		n = 1
	}
	pts := make([]r3.Vec, n+1)
	d := r3.Sub(s.To, s.From)
	for i := 0; i <= n; i++ {
		pts[i] = r3.Add(s.From, r3.Scale(float64(i)/float64(n), d))
	}
	return pts
}

type Arc struct {
	From, Center, To r3.Vec
}

func (a Arc) Start() r3.Vec { return a.From }
func (a Arc) End() r3.Vec   { return a.To }

// Radius is measured from the start point.
func (a Arc) Radius() float64 { return r3.Norm(r3.Sub(a.From, a.Center)) }

// EndRadius is measured from the end point; equal to Radius for a valid arc.
func (a Arc) EndRadius() float64 { return r3.Norm(r3.Sub(a.To, a.Center)) }

// Sweep is the angle subtended at the center, in [0, Pi].
func (a Arc) Sweep() float64 {
	u, w := r3.Sub(a.From, a.Center), r3.Sub(a.To, a.Center)
	return math.Atan2(r3.Norm(r3.Cross(u, w)), r3.Dot(u, w))
}

func (a Arc) Length() float64 { return a.Radius() * a.Sweep() }

// Sample interpolates spherically between the two radius vectors, which
// keeps every sample on the circle when both radii agree.
func (a Arc) Sample(n int) []r3.Vec {
	if n < 1 {
		n = 1
	}
	var (
		u, w  = r3.Sub(a.From, a.Center), r3.Sub(a.To, a.Center)
		theta = a.Sweep()
		sinT  = math.Sin(theta)
		pts   = make([]r3.Vec, n+1)
	)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		if sinT < 1e-12 {
			pts[i] = r3.Add(a.From, r3.Scale(t, r3.Sub(a.To, a.From)))
			continue
		}
		c1 := math.Sin((1-t)*theta) / sinT
		c2 := math.Sin(t*theta) / sinT
		pts[i] = r3.Add(a.Center, r3.Add(r3.Scale(c1, u), r3.Scale(c2, w)))
	}
	pts[0], pts[n] = a.From, a.To
	return pts
}

func (m *Model) coord(owner string, id int) (r3.Vec, error) {
	p, ok := m.points[id]
	if !ok {
		return r3.Vec{}, newError(ErrReference, owner, "undeclared Point(%d)", id)
	}
	return p.Coord, nil
}

// ResolveCurve replaces the point ids of a curve by their coordinates.
func (m *Model) ResolveCurve(id int) (Shape, error) {
	c, ok := m.curves[id]
	if !ok {
		return nil, newError(ErrReference, fmt.Sprintf("curve %d", id), "undeclared")
	}
	owner := fmt.Sprint(c)
	switch cv := c.(type) {
	case Line:
		from, err := m.coord(owner, cv.Start)
		if err != nil {
			return nil, err
		}
		to, err := m.coord(owner, cv.End)
		if err != nil {
			return nil, err
		}
		return Segment{From: from, To: to}, nil
	case Circle:
		from, err := m.coord(owner, cv.Start)
		if err != nil {
			return nil, err
		}
		center, err := m.coord(owner, cv.Center)
		if err != nil {
			return nil, err
		}
		to, err := m.coord(owner, cv.End)
		if err != nil {
			return nil, err
		}
		return Arc{From: from, Center: center, To: to}, nil
	}
	return nil, fmt.Errorf("unknown curve type %T", c)
}

// ResolveEdge resolves a signed loop entry; negative ids are returned with
// their direction reversed.
func (m *Model) ResolveEdge(signed int) (Shape, error) {
	id := signed
	if id < 0 {
		id = -id
	}
	s, err := m.ResolveCurve(id)
	if err != nil || signed > 0 {
		return s, err
	}
	return reverse(s), nil
}

func reverse(s Shape) Shape {
	switch v := s.(type) {
	case Segment:
		return Segment{From: v.To, To: v.From}
	case Arc:
		return Arc{From: v.To, Center: v.Center, To: v.From}
	}
	return s
}
