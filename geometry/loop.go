package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// orientedEndpoints honours the sign of a loop entry.
func orientedEndpoints(c Curve, signed int) (start, end int) {
	start, end = c.Endpoints()
	if signed < 0 {
		start, end = end, start
	}
	return
}

// LoopVertices walks the loop head to tail and returns the start point of
// every edge. Point 0 of the result is the start of the first listed edge.
// The walk fails with ErrReference on an undeclared curve and ErrGeometry
// when consecutive edges do not share a point or the chain does not close.
func (m *Model) LoopVertices(id int) ([]int, error) {
	l, ok := m.loops[id]
	if !ok {
		return nil, newError(ErrReference, fmt.Sprintf("Line Loop(%d)", id), "undeclared")
	}
	var (
		owner = l.String()
		verts = make([]int, 0, len(l.Edges))
		first int
		prev  int
	)
	for i, e := range l.Edges {
		c, ok := m.curves[abs(e)]
		if !ok {
			return nil, newError(ErrReference, owner, "undeclared curve %d", abs(e))
		}
		start, end := orientedEndpoints(c, e)
		if i == 0 {
			first = start
		} else if start != prev {
			return nil, newError(ErrGeometry, owner,
				"edge %d starts at Point(%d) but edge %d ends at Point(%d)", e, start, l.Edges[i-1], prev)
		}
		verts = append(verts, start)
		prev = end
	}
	if prev != first {
		return nil, newError(ErrGeometry, owner,
			"not closed: ends at Point(%d), started at Point(%d)", prev, first)
	}
	return verts, nil
}

// LoopShapes resolves every edge of a loop in traversal direction.
func (m *Model) LoopShapes(id int) ([]Shape, error) {
	if _, err := m.LoopVertices(id); err != nil {
		return nil, err
	}
	l := m.loops[id]
	shapes := make([]Shape, len(l.Edges))
	for i, e := range l.Edges {
		s, err := m.ResolveEdge(e)
		if err != nil {
			return nil, err
		}
		shapes[i] = s
	}
	return shapes, nil
}

// samplePolyline concatenates the sampled edges, dropping each edge's final
// point since it is the next edge's first.
func samplePolyline(shapes []Shape, arcSegments int) []r3.Vec {
	var pts []r3.Vec
	for _, s := range shapes {
		n := 1
		if _, isArc := s.(Arc); isArc {
			n = arcSegments
		}
		samples := s.Sample(n)
		pts = append(pts, samples[:len(samples)-1]...)
	}
	return pts
}

// LoopPolyline returns the closed loop as a polyline with arcs sampled into
// arcSegments pieces.
func (m *Model) LoopPolyline(id, arcSegments int) ([]r3.Vec, error) {
	shapes, err := m.LoopShapes(id)
	if err != nil {
		return nil, err
	}
	return samplePolyline(shapes, arcSegments), nil
}
