package geometry

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// physicalKey identifies a group by name, or by tag when it has no name.
type physicalKey struct {
	dim  Dimension
	name string
	tag  int
}

// Model holds every declaration of a geometry script, keyed by id. It
// records declarations only; references are resolved by Check.
type Model struct {
	points      map[int]Point
	curves      map[int]Curve
	loops       map[int]LineLoop
	surfaces    map[int]PlaneSurface
	physicals   map[physicalKey]PhysicalGroup
	meshOptions map[string]float64
	recombine   map[int]bool
	transfinite []Transfinite
	sizes       []SizeConstraint
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{
		points:      make(map[int]Point),
		curves:      make(map[int]Curve),
		loops:       make(map[int]LineLoop),
		surfaces:    make(map[int]PlaneSurface),
		physicals:   make(map[physicalKey]PhysicalGroup),
		meshOptions: make(map[string]float64),
		recombine:   make(map[int]bool),
	}
}

func duplicate(entity fmt.Stringer) error {
	return newError(ErrDuplicate, entity.String(), "already declared")
}

func (m *Model) AddPoint(id int, x, y, z float64) error {
	return m.AddPointWithSize(id, x, y, z, 0)
}

func (m *Model) AddPointWithSize(id int, x, y, z, size float64) error {
	p := Point{ID: id, Coord: r3.Vec{X: x, Y: y, Z: z}, MeshSize: size}
	if _, ok := m.points[id]; ok {
		return duplicate(p)
	}
	if size < 0 {
		return newError(ErrGeometry, p.String(), "negative characteristic length %g", size)
	}
	m.points[id] = p
	return nil
}

func (m *Model) addCurve(c Curve) error {
	if prev, ok := m.curves[c.CurveID()]; ok {
		return newError(ErrDuplicate, fmt.Sprint(c), "curve id already used by %v", prev)
	}
	m.curves[c.CurveID()] = c
	return nil
}

func (m *Model) AddLine(id, start, end int) error {
	return m.addCurve(Line{ID: id, Start: start, End: end})
}

func (m *Model) AddCircle(id, start, center, end int) error {
	return m.addCurve(Circle{ID: id, Start: start, Center: center, End: end})
}

func (m *Model) AddLoop(id int, edges ...int) error {
	l := LineLoop{ID: id, Edges: append([]int(nil), edges...)}
	if _, ok := m.loops[id]; ok {
		return duplicate(l)
	}
	if len(edges) == 0 {
		return newError(ErrGeometry, l.String(), "no edges")
	}
	for _, e := range edges {
		if e == 0 {
			return newError(ErrReference, l.String(), "edge id 0 has no orientation")
		}
	}
	m.loops[id] = l
	return nil
}

func (m *Model) AddSurface(id int, loops ...int) error {
	s := PlaneSurface{ID: id, Loops: append([]int(nil), loops...)}
	if _, ok := m.surfaces[id]; ok {
		return duplicate(s)
	}
	if len(loops) == 0 {
		return newError(ErrGeometry, s.String(), "no boundary loop")
	}
	m.surfaces[id] = s
	return nil
}

// AddPhysical declares a physical group. A group needs a name, a non-zero
// tag, or both; it may be declared once per dimension.
func (m *Model) AddPhysical(dim Dimension, name string, tag int, members ...int) error {
	g := PhysicalGroup{Dim: dim, Name: name, Tag: tag, Members: append([]int(nil), members...)}
	if dim > DimSurface {
		return newError(ErrConfig, g.String(), "unsupported dimension")
	}
	if name == "" && tag == 0 {
		return newError(ErrSyntax, g.String(), "physical group needs a name or a tag")
	}
	if len(members) == 0 {
		return newError(ErrReference, g.String(), "no members")
	}
	key := g.key()
	if _, ok := m.physicals[key]; ok {
		return duplicate(g)
	}
	if other, ok := m.PhysicalByTag(dim, tag); ok && tag != 0 {
		return newError(ErrDuplicate, g.String(), "tag %d already used by %v", tag, other)
	}
	m.physicals[key] = g
	return nil
}

// SetMeshOption records a Mesh.<name> directive. Range checks happen in Check
// so that unknown options can be downgraded to warnings.
func (m *Model) SetMeshOption(name string, value float64) error {
	if _, ok := m.meshOptions[name]; ok {
		return duplicate(MeshOption{Name: name})
	}
	m.meshOptions[name] = value
	return nil
}

func (m *Model) AddRecombine(surfaces ...int) {
	for _, s := range surfaces {
		m.recombine[s] = true
	}
}

func (m *Model) AddTransfinite(curves []int, nodes int, progression float64) error {
	if nodes < 2 {
		return newError(ErrConfig, "Transfinite Line", "needs at least 2 nodes, got %d", nodes)
	}
	if progression < 0 {
		return newError(ErrConfig, "Transfinite Line", "negative progression %g", progression)
	}
	m.transfinite = append(m.transfinite, Transfinite{
		Curves:      append([]int(nil), curves...),
		Nodes:       nodes,
		Progression: progression,
	})
	return nil
}

func (m *Model) AddSizeConstraint(points []int, size float64) error {
	if size <= 0 {
		return newError(ErrConfig, "Characteristic Length", "size must be positive, got %g", size)
	}
	m.sizes = append(m.sizes, SizeConstraint{Points: append([]int(nil), points...), Size: size})
	return nil
}

func (m *Model) Point(id int) (p Point, ok bool) {
	p, ok = m.points[id]
	return
}

func (m *Model) Curve(id int) (c Curve, ok bool) {
	c, ok = m.curves[id]
	return
}

func (m *Model) Loop(id int) (l LineLoop, ok bool) {
	l, ok = m.loops[id]
	return
}

func (m *Model) Surface(id int) (s PlaneSurface, ok bool) {
	s, ok = m.surfaces[id]
	return
}

// Physical looks a group up by name.
func (m *Model) Physical(dim Dimension, name string) (g PhysicalGroup, ok bool) {
	g, ok = m.physicals[physicalKey{dim: dim, name: name}]
	return
}

// PhysicalByTag finds the group carrying tag, named or not.
func (m *Model) PhysicalByTag(dim Dimension, tag int) (g PhysicalGroup, ok bool) {
	if g, ok = m.physicals[physicalKey{dim: dim, tag: tag}]; ok {
		return
	}
	for _, g = range m.physicals {
		if g.Dim == dim && g.Tag == tag {
			return g, true
		}
	}
	return PhysicalGroup{}, false
}

func (m *Model) MeshOption(name string) (v float64, ok bool) {
	v, ok = m.meshOptions[name]
	return
}

func sortedKeys[V any](in map[int]V) []int {
	keys := make([]int, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (m *Model) Points() []Point {
	out := make([]Point, 0, len(m.points))
	for _, id := range sortedKeys(m.points) {
		out = append(out, m.points[id])
	}
	return out
}

func (m *Model) Curves() []Curve {
	out := make([]Curve, 0, len(m.curves))
	for _, id := range sortedKeys(m.curves) {
		out = append(out, m.curves[id])
	}
	return out
}

func (m *Model) Loops() []LineLoop {
	out := make([]LineLoop, 0, len(m.loops))
	for _, id := range sortedKeys(m.loops) {
		out = append(out, m.loops[id])
	}
	return out
}

func (m *Model) Surfaces() []PlaneSurface {
	out := make([]PlaneSurface, 0, len(m.surfaces))
	for _, id := range sortedKeys(m.surfaces) {
		out = append(out, m.surfaces[id])
	}
	return out
}

// PhysicalGroups are ordered by dimension, then tag, then name.
func (m *Model) PhysicalGroups() []PhysicalGroup {
	out := make([]PhysicalGroup, 0, len(m.physicals))
	for _, g := range m.physicals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Dim != b.Dim {
			return a.Dim < b.Dim
		}
		if a.Tag != b.Tag {
			return a.Tag < b.Tag
		}
		return a.Name < b.Name
	})
	return out
}

// MeshOptions are ordered by name.
func (m *Model) MeshOptions() []MeshOption {
	out := make([]MeshOption, 0, len(m.meshOptions))
	for name, v := range m.meshOptions {
		out = append(out, MeshOption{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Model) RecombinedSurfaces() []int {
	return sortedKeys(m.recombine)
}

func (m *Model) TransfiniteCurves() []Transfinite {
	return append([]Transfinite(nil), m.transfinite...)
}

func (m *Model) SizeConstraints() []SizeConstraint {
	return append([]SizeConstraint(nil), m.sizes...)
}

// Counts reports the number of declarations per category.
type Counts struct {
	Points, Lines, Circles, Loops, Surfaces, Physicals, MeshOptions int
}

func (m *Model) Counts() (c Counts) {
	c.Points = len(m.points)
	for _, cv := range m.curves {
		if cv.Kind() == KindCircle {
			c.Circles++
		} else {
			c.Lines++
		}
	}
	c.Loops = len(m.loops)
	c.Surfaces = len(m.surfaces)
	c.Physicals = len(m.physicals)
	c.MeshOptions = len(m.meshOptions)
	return
}
