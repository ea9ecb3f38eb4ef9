package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gogeo/utils"
)

type Box struct {
	Min, Max r3.Vec
}

func (b Box) Diagonal() float64 { return r3.Norm(r3.Sub(b.Max, b.Min)) }

// Bounds is the axis aligned box around every declared point; the zero Box
// for an empty model.
func (m *Model) Bounds() (b Box) {
	first := true
	for _, p := range m.points {
		if first {
			b.Min, b.Max = p.Coord, p.Coord
			first = false
			continue
		}
		b.Min = r3.Vec{X: math.Min(b.Min.X, p.Coord.X), Y: math.Min(b.Min.Y, p.Coord.Y), Z: math.Min(b.Min.Z, p.Coord.Z)}
		b.Max = r3.Vec{X: math.Max(b.Max.X, p.Coord.X), Y: math.Max(b.Max.Y, p.Coord.Y), Z: math.Max(b.Max.Z, p.Coord.Z)}
	}
	return
}

func (m *Model) CurveLength(id int) (float64, error) {
	s, err := m.ResolveCurve(id)
	if err != nil {
		return 0, err
	}
	return s.Length(), nil
}

func (m *Model) LoopLength(id int) (float64, error) {
	shapes, err := m.LoopShapes(id)
	if err != nil {
		return 0, err
	}
	lengths := make([]float64, len(shapes))
	for i, s := range shapes {
		lengths[i] = s.Length()
	}
	return floats.Sum(lengths), nil
}

// Orientation of a loop seen from the positive side of its plane.
type Orientation int8

const (
	Clockwise        Orientation = -1
	CounterClockwise Orientation = 1
)

func (o Orientation) String() string {
	if o == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// LoopArea is the signed area enclosed by a loop, measured against the
// normal returned by FitPlane: positive for a counter-clockwise traversal.
// Arcs contribute their exact circular segment rather than a chord.
func (m *Model) LoopArea(id int) (float64, error) {
	shapes, err := m.LoopShapes(id)
	if err != nil {
		return 0, err
	}
	plane, ok := FitPlane(samplePolyline(shapes, utils.ARCSEGMENTS))
	if !ok {
		return 0, newError(ErrGeometry, fmt.Sprintf("Line Loop(%d)", id), "encloses no area")
	}
	chords := make([]r3.Vec, len(shapes))
	for i, s := range shapes {
		chords[i] = s.Start()
	}
	area := plane.ProjectAll(chords).SignedArea()
	for _, s := range shapes {
		arc, ok := s.(Arc)
		if !ok {
			continue
		}
		var (
			r     = arc.Radius()
			theta = arc.Sweep()
			mid   = arc.Sample(2)[1]
			turn  = r3.Dot(r3.Cross(r3.Sub(mid, arc.From), r3.Sub(arc.To, arc.From)), plane.Normal)
		)
		segment := 0.5 * r * r * (theta - math.Sin(theta))
		if turn < 0 {
			segment = -segment
		}
		area += segment
	}
	return area, nil
}

// LoopOrientation is read from the sampled boundary projected onto the
// loop's plane.
func (m *Model) LoopOrientation(id int) (Orientation, error) {
	pts, err := m.LoopPolyline(id, utils.ARCSEGMENTS)
	if err != nil {
		return 0, err
	}
	plane, ok := FitPlane(pts)
	if !ok {
		return 0, newError(ErrGeometry, fmt.Sprintf("Line Loop(%d)", id), "encloses no area")
	}
	if plane.ProjectAll(pts).IsCCW() {
		return CounterClockwise, nil
	}
	return Clockwise, nil
}

// SurfaceArea is the outer loop's area less the area of its holes.
func (m *Model) SurfaceArea(id int) (float64, error) {
	s, ok := m.surfaces[id]
	if !ok {
		return 0, newError(ErrReference, fmt.Sprintf("Plane Surface(%d)", id), "undeclared")
	}
	var area float64
	for i, l := range s.Loops {
		a, err := m.LoopArea(l)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			area += math.Abs(a)
		} else {
			area -= math.Abs(a)
		}
	}
	return area, nil
}
