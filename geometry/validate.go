package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gogeo/geometry2D"
	"github.com/notargets/gogeo/utils"
)

// CheckParams tunes the geometric tolerances of Check.
type CheckParams struct {
	// Tolerance is relative to the diagonal of the model's bounding box.
	Tolerance float64
	// ArcSegments is the number of chords used per arc when testing loops
	// for self intersection.
	ArcSegments int
	// Strict makes unrecognised mesh options errors instead of warnings.
	Strict bool
	// WarnUnused reports points no curve or physical group refers to.
	WarnUnused bool
}

func DefaultCheckParams() CheckParams {
	return CheckParams{
		Tolerance:   utils.NODETOL,
		ArcSegments: utils.ARCSEGMENTS,
		Strict:      true,
		WarnUnused:  true,
	}
}

// Report is the outcome of Check. Errors and Warnings hold *Error values in
// declaration-category order, then id order.
type Report struct {
	Errors   []error
	Warnings []error
}

func (r Report) OK() bool { return len(r.Errors) == 0 }

// Err joins all errors, nil when there are none.
func (r Report) Err() error { return errors.Join(r.Errors...) }

type checker struct {
	m      *Model
	params CheckParams
	tol    float64 // absolute length tolerance
	report Report
}

func (c *checker) fail(errs ...error) { c.report.Errors = append(c.report.Errors, errs...) }
func (c *checker) warn(err error) { c.report.Warnings = append(c.report.Warnings, err) }

// Resolve reports every reference to an undeclared entity, joined into one
// error. It checks ids only; Check adds the geometric invariants.
func (m *Model) Resolve() error {
	var errs []error
	for _, cv := range m.Curves() {
		errs = append(errs, m.curveRefs(cv)...)
	}
	for _, l := range m.Loops() {
		errs = append(errs, m.loopRefs(l)...)
	}
	for _, s := range m.Surfaces() {
		errs = append(errs, m.surfaceRefs(s)...)
	}
	errs = append(errs, m.physicalRefs()...)
	errs = append(errs, m.constraintRefs()...)
	return errors.Join(errs...)
}

func (m *Model) curveRefs(cv Curve) (errs []error) {
	for _, id := range cv.PointRefs() {
		if _, ok := m.points[id]; !ok {
			errs = append(errs, newError(ErrReference, fmt.Sprint(cv), "undeclared Point(%d)", id))
		}
	}
	return
}

func (m *Model) loopRefs(l LineLoop) (errs []error) {
	seen := make(map[int]bool)
	for _, e := range l.Edges {
		id := abs(e)
		if _, ok := m.curves[id]; !ok && !seen[id] {
			errs = append(errs, newError(ErrReference, l.String(), "undeclared curve %d", id))
			seen[id] = true
		}
	}
	return
}

func (m *Model) surfaceRefs(s PlaneSurface) (errs []error) {
	for _, id := range s.Loops {
		if _, ok := m.loops[id]; !ok {
			errs = append(errs, newError(ErrReference, s.String(), "undeclared Line Loop(%d)", id))
		}
	}
	return
}

func (m *Model) physicalRefs() (errs []error) {
	for _, g := range m.PhysicalGroups() {
		owner := g.String()
		for _, id := range g.Members {
			if g.Dim == DimPoint && id < 0 {
				errs = append(errs, newError(ErrReference, owner, "negative point id %d", id))
				continue
			}
			id = abs(id)
			var ok bool
			switch g.Dim {
			case DimPoint:
				_, ok = m.points[id]
			case DimCurve:
				_, ok = m.curves[id]
			case DimSurface:
				_, ok = m.surfaces[id]
			}
			if !ok {
				errs = append(errs, newError(ErrReference, owner, "undeclared %s %d", memberNoun(g.Dim), id))
			}
		}
	}
	return
}

func (m *Model) constraintRefs() (errs []error) {
	for _, id := range m.RecombinedSurfaces() {
		if _, ok := m.surfaces[id]; !ok {
			errs = append(errs, newError(ErrReference, "Recombine Surface", "undeclared surface %d", id))
		}
	}
	for _, t := range m.transfinite {
		for _, id := range t.Curves {
			if _, ok := m.curves[abs(id)]; !ok {
				errs = append(errs, newError(ErrReference, "Transfinite Line", "undeclared curve %d", abs(id)))
			}
		}
	}
	for _, s := range m.sizes {
		for _, id := range s.Points {
			if _, ok := m.points[id]; !ok {
				errs = append(errs, newError(ErrReference, "Characteristic Length", "undeclared point %d", id))
			}
		}
	}
	return
}

// Validate returns every violated invariant joined into one error.
func (m *Model) Validate(params CheckParams) error {
	return m.Check(params).Err()
}

// Check resolves all references and verifies the structural invariants of
// the model: references resolve, loops close and are simple and planar,
// arcs are circular, physical groups hold entities of their dimension and
// mesh directives are in range.
func (m *Model) Check(params CheckParams) Report {
	if params.ArcSegments < 2 {
		params.ArcSegments = DefaultCheckParams().ArcSegments
	}
	if params.Tolerance <= 0 {
		params.Tolerance = DefaultCheckParams().Tolerance
	}
	c := &checker{m: m, params: params}
	c.tol = params.Tolerance * math.Max(1, m.Bounds().Diagonal())

	c.checkCurves()
	planes := c.checkLoops()
	c.checkSurfaces(planes)
	c.checkPhysicals()
	c.checkMeshOptions()
	c.checkConstraints()
	if params.WarnUnused {
		c.checkUnused()
	}
	return c.report
}

func (c *checker) checkCurves() {
	for _, cv := range c.m.Curves() {
		owner := fmt.Sprint(cv)
		if errs := c.m.curveRefs(cv); len(errs) > 0 {
			c.fail(errs...)
			continue
		}
		shape, _ := c.m.ResolveCurve(cv.CurveID())
		start, end := cv.Endpoints()
		switch s := shape.(type) {
		case Segment:
			if start == end || s.Length() <= c.tol {
				c.fail(newError(ErrGeometry, owner, "degenerate: zero length"))
			}
		case Arc:
			c.checkArc(owner, s)
		}
	}
}

func (c *checker) checkArc(owner string, a Arc) {
	r0, r1 := a.Radius(), a.EndRadius()
	switch {
	case r0 <= c.tol || r1 <= c.tol:
		c.fail(newError(ErrGeometry, owner, "zero radius"))
		return
	case !scalar.EqualWithinAbsOrRel(r0, r1, c.tol, math.Sqrt(c.params.Tolerance)):
		c.fail(newError(ErrGeometry, owner,
			"start and end are not equidistant from the center (%g vs %g)", r0, r1))
		return
	}
	sweep := a.Sweep()
	if sweep*r0 <= c.tol {
		c.fail(newError(ErrGeometry, owner, "degenerate: start and end coincide"))
	} else if sweep >= math.Pi-1e-9 {
		c.fail(newError(ErrGeometry, owner, "sweep %.6g rad must be strictly less than Pi", sweep))
	}
}

// loopPlane is the sampled geometry of a closed loop, kept for the surface
// checks.
type loopPlane struct {
	plane Plane
	pts   []r3.Vec
}

func (c *checker) checkLoops() map[int]loopPlane {
	planes := make(map[int]loopPlane)
	for _, l := range c.m.Loops() {
		owner := l.String()
		verts, err := c.m.LoopVertices(l.ID)
		if err != nil {
			c.fail(err)
			continue
		}
		if c.invalidEdges(l) {
			continue
		}
		seen := make(map[int]bool, len(verts))
		repeated := false
		for _, v := range verts {
			if seen[v] {
				c.fail(newError(ErrGeometry, owner, "not simple: visits Point(%d) twice", v))
				repeated = true
				break
			}
			seen[v] = true
		}
		if repeated {
			continue
		}
		pts, _ := c.m.LoopPolyline(l.ID, c.params.ArcSegments)
		plane, ok := FitPlane(pts)
		if !ok {
			c.fail(newError(ErrGeometry, owner, "encloses no area"))
			continue
		}
		if !c.planar(owner, plane, c.loopPoints(l, pts)) {
			continue
		}
		poly := plane.ProjectAll(pts)
		if i, j, crossed := poly.SelfIntersection(c.tol * c.tol); crossed {
			c.fail(newError(ErrGeometry, owner,
				"not simple: boundary crosses itself near (%s) and (%s)", fmtVec(pts[i]), fmtVec(pts[j])))
			continue
		}
		if math.Abs(poly.SignedArea()) <= c.tol*poly.Perimeter() {
			c.fail(newError(ErrGeometry, owner, "encloses no area: a sliver thinner than the tolerance"))
			continue
		}
		planes[l.ID] = loopPlane{plane: plane, pts: pts}
	}
	return planes
}

// invalidEdges reports whether a loop uses a curve that already failed its
// own checks; such loops are not measured further.
func (c *checker) invalidEdges(l LineLoop) bool {
	for _, e := range l.Edges {
		owner := fmt.Sprint(c.m.curves[abs(e)])
		for _, err := range c.report.Errors {
			var ge *Error
			if errors.As(err, &ge) && ge.Entity == owner {
				return true
			}
		}
	}
	return false
}

// loopPoints adds the arc centers to the sampled boundary since a center
// off the plane bends the arc out of it.
func (c *checker) loopPoints(l LineLoop, pts []r3.Vec) []r3.Vec {
	out := append([]r3.Vec(nil), pts...)
	for _, e := range l.Edges {
		if circ, ok := c.m.curves[abs(e)].(Circle); ok {
			out = append(out, c.m.points[circ.Center].Coord)
		}
	}
	return out
}

func (c *checker) planar(owner string, plane Plane, pts []r3.Vec) bool {
	for _, p := range pts {
		if d := plane.Distance(p); math.Abs(d) > c.tol {
			c.fail(newError(ErrGeometry, owner, "not planar: (%s) is %g off the plane", fmtVec(p), d))
			return false
		}
	}
	return true
}

func (c *checker) checkSurfaces(planes map[int]loopPlane) {
	for _, s := range c.m.Surfaces() {
		owner := s.String()
		errs := c.m.surfaceRefs(s)
		c.fail(errs...)
		usable := len(errs) == 0
		for _, id := range s.Loops {
			if _, ok := planes[id]; !ok {
				usable = false
			}
		}
		if !usable {
			continue
		}
		outer := planes[s.Loops[0]]
		var all []r3.Vec
		for _, id := range s.Loops {
			all = append(all, planes[id].pts...)
		}
		if !c.planar(owner, outer.plane, all) {
			continue
		}
		outerPoly := outer.plane.ProjectAll(outer.pts)
		holes := make([]geometry2D.Polygon, 0, len(s.Loops)-1)
		for _, id := range s.Loops[1:] {
			hole := outer.plane.ProjectAll(planes[id].pts)
			switch {
			case outerPoly.Crosses(hole, c.tol*c.tol):
				c.fail(newError(ErrGeometry, owner, "hole Line Loop(%d) crosses the outer boundary", id))
			case !outerPoly.Contains(hole[0]):
				c.fail(newError(ErrGeometry, owner, "hole Line Loop(%d) lies outside the outer boundary", id))
			}
			for k, other := range holes {
				if hole.Crosses(other, c.tol*c.tol) || other.Contains(hole[0]) || hole.Contains(other[0]) {
					c.fail(newError(ErrGeometry, owner, "holes Line Loop(%d) and Line Loop(%d) overlap",
						s.Loops[k+1], id))
				}
			}
			holes = append(holes, hole)
		}
	}
}

func (c *checker) checkPhysicals() {
	c.fail(c.m.physicalRefs()...)
}

func memberNoun(d Dimension) string {
	switch d {
	case DimPoint:
		return "point"
	case DimCurve:
		return "curve"
	}
	return "surface"
}

func (c *checker) checkMeshOptions() {
	errs, unknown := c.m.checkMeshOptions()
	for _, err := range errs {
		c.fail(err)
	}
	for _, err := range unknown {
		if c.params.Strict {
			c.fail(err)
		} else {
			c.warn(err)
		}
	}
}

func (c *checker) checkConstraints() {
	c.fail(c.m.constraintRefs()...)
}

func (c *checker) checkUnused() {
	used := make(map[int]bool)
	for _, cv := range c.m.curves {
		for _, id := range cv.PointRefs() {
			used[id] = true
		}
	}
	for _, g := range c.m.physicals {
		if g.Dim == DimPoint {
			for _, id := range g.Members {
				used[id] = true
			}
		}
	}
	for _, p := range c.m.Points() {
		if !used[p.ID] {
			c.warn(newError(ErrReference, p.String(), "not used by any curve or physical group"))
		}
	}
}

func fmtVec(v r3.Vec) string {
	return fmt.Sprintf("%g, %g, %g", v.X, v.Y, v.Z)
}
