package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dimension of a geometric entity, used to type physical group members.
type Dimension uint8

const (
	DimPoint Dimension = iota
	DimCurve
	DimSurface
)

func (d Dimension) String() string {
	switch d {
	case DimPoint:
		return "Point"
	case DimCurve:
		return "Line"
	case DimSurface:
		return "Surface"
	}
	return fmt.Sprintf("Dimension(%d)", uint8(d))
}

type Point struct {
	ID    int
	Coord r3.Vec
	// MeshSize is the characteristic length given as the optional fourth
	// value of the declaration, zero when absent.
	MeshSize float64
}

func (p Point) String() string { return fmt.Sprintf("Point(%d)", p.ID) }

type CurveKind uint8

const (
	KindLine CurveKind = iota
	KindCircle
)

func (k CurveKind) String() string {
	return [...]string{"Line", "Circle"}[k]
}

// Curve is a Line or a Circle. Both share one id space.
type Curve interface {
	CurveID() int
	Kind() CurveKind
	// Endpoints returns the start and end point ids in declaration order.
	Endpoints() (start, end int)
	// PointRefs returns every point id the curve depends on.
	PointRefs() []int
}

type Line struct {
	ID         int
	Start, End int
}

func (l Line) CurveID() int                { return l.ID }
func (l Line) Kind() CurveKind             { return KindLine }
func (l Line) Endpoints() (start, end int) { return l.Start, l.End }
func (l Line) PointRefs() []int            { return []int{l.Start, l.End} }
func (l Line) String() string              { return fmt.Sprintf("Line(%d)", l.ID) }

// Circle is a circular arc from Start to End around Center, taking the short
// way round.
type Circle struct {
	ID                 int
	Start, Center, End int
}

func (c Circle) CurveID() int                { return c.ID }
func (c Circle) Kind() CurveKind             { return KindCircle }
func (c Circle) Endpoints() (start, end int) { return c.Start, c.End }
func (c Circle) PointRefs() []int            { return []int{c.Start, c.Center, c.End} }
func (c Circle) String() string              { return fmt.Sprintf("Circle(%d)", c.ID) }

// LineLoop lists signed curve ids; a negative id runs the curve backwards.
type LineLoop struct {
	ID    int
	Edges []int
}

func (l LineLoop) String() string { return fmt.Sprintf("Line Loop(%d)", l.ID) }

// PlaneSurface is bounded by Loops[0]; any further loops are holes.
type PlaneSurface struct {
	ID    int
	Loops []int
}

func (s PlaneSurface) String() string { return fmt.Sprintf("Plane Surface(%d)", s.ID) }

// PhysicalGroup tags entities of one dimension. Tag is zero when the
// declaration only gave a name.
type PhysicalGroup struct {
	Dim     Dimension
	Name    string
	Tag     int
	Members []int
}

func (g PhysicalGroup) key() physicalKey {
	if g.Name != "" {
		return physicalKey{dim: g.Dim, name: g.Name}
	}
	return physicalKey{dim: g.Dim, tag: g.Tag}
}

func (g PhysicalGroup) String() string {
	if g.Name != "" {
		return fmt.Sprintf("Physical %s(%q)", g.Dim, g.Name)
	}
	return fmt.Sprintf("Physical %s(%d)", g.Dim, g.Tag)
}

type MeshOption struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (o MeshOption) String() string { return "Mesh." + o.Name }

// Transfinite fixes the node count along a set of curves.
type Transfinite struct {
	Curves      []int   `json:"curves"`
	Nodes       int     `json:"nodes"`
	Progression float64 `json:"progression,omitempty"` // zero when no "Using Progression" clause was given
}

// SizeConstraint sets the characteristic length at a set of points.
type SizeConstraint struct {
	Points []int   `json:"points"`
	Size   float64 `json:"size"`
}
