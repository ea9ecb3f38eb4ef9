package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gogeo/geometry2D"
)

// Plane carries an orthonormal frame: Normal plus the in-plane axes U and V,
// with U x V = Normal so that projected polygons keep their orientation.
type Plane struct {
	Origin, Normal, U, V r3.Vec
}

// newellNormal is twice the vector area of the closed polyline pts.
func newellNormal(pts []r3.Vec) (n r3.Vec) {
	for i := range pts {
		n = r3.Add(n, r3.Cross(pts[i], pts[(i+1)%len(pts)]))
	}
	return
}

// FitPlane returns the plane of a closed polyline. The normal is flipped so
// that its largest component is positive, which makes the plane independent
// of the traversal direction. ok is false when the polyline encloses no area.
func FitPlane(pts []r3.Vec) (pl Plane, ok bool) {
	n := newellNormal(pts)
	norm := r3.Norm(n)
	if len(pts) < 3 || norm == 0 {
		return pl, false
	}
	n = r3.Scale(1/norm, n)
	if dominant(n) < 0 {
		n = r3.Scale(-1, n)
	}
	var centroid r3.Vec
	for _, p := range pts {
		centroid = r3.Add(centroid, p)
	}
	pl.Origin = r3.Scale(1/float64(len(pts)), centroid)
	pl.Normal = n
	for _, axis := range []r3.Vec{{X: 1}, {Y: 1}} {
		u := r3.Sub(axis, r3.Scale(r3.Dot(axis, n), n))
		if un := r3.Norm(u); un > 1e-6 {
			pl.U = r3.Scale(1/un, u)
			break
		}
	}
	pl.V = r3.Cross(n, pl.U)
	return pl, true
}

func dominant(v r3.Vec) float64 {
	best := v.X
	for _, c := range []float64{v.Y, v.Z} {
		if math.Abs(c) > math.Abs(best) {
			best = c
		}
	}
	return best
}

// Distance is the signed offset of p from the plane along the normal.
func (pl Plane) Distance(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(p, pl.Origin), pl.Normal)
}

func (pl Plane) Project(p r3.Vec) geometry2D.Point {
	d := r3.Sub(p, pl.Origin)
	return geometry2D.NewPoint(r3.Dot(d, pl.U), r3.Dot(d, pl.V))
}

func (pl Plane) ProjectAll(pts []r3.Vec) geometry2D.Polygon {
	pg := make(geometry2D.Polygon, len(pts))
	for i, p := range pts {
		pg[i] = pl.Project(p)
	}
	return pg
}
