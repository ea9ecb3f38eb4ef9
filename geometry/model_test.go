package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestModelDuplicates(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddPoint(1, 0, 0, 0))
	require.NoError(t, m.AddPoint(2, 1, 0, 0))
	require.NoError(t, m.AddPoint(3, 0, 1, 0))

	assert.ErrorIs(t, m.AddPoint(1, 5, 5, 5), ErrDuplicate)
	p, ok := m.Point(1)
	require.True(t, ok)
	assert.Equal(t, r3.Vec{}, p.Coord, "a rejected duplicate must not replace the original")

	require.NoError(t, m.AddLine(10, 1, 2))
	assert.ErrorIs(t, m.AddLine(10, 2, 3), ErrDuplicate)
	assert.ErrorIs(t, m.AddCircle(10, 2, 1, 3), ErrDuplicate, "lines and circles share one id space")

	require.NoError(t, m.AddLoop(20, 10))
	assert.ErrorIs(t, m.AddLoop(20, 10), ErrDuplicate)
	require.NoError(t, m.AddSurface(30, 20))
	assert.ErrorIs(t, m.AddSurface(30, 20), ErrDuplicate)

	require.NoError(t, m.SetMeshOption("Algorithm", 6))
	assert.ErrorIs(t, m.SetMeshOption("Algorithm", 8), ErrDuplicate)
}

func TestModelDeclarationErrors(t *testing.T) {
	m := NewModel()
	assert.ErrorIs(t, m.AddPointWithSize(1, 0, 0, 0, -1), ErrGeometry)
	assert.ErrorIs(t, m.AddLoop(1), ErrGeometry)
	assert.ErrorIs(t, m.AddLoop(2, 4, 0, 5), ErrReference)
	assert.ErrorIs(t, m.AddSurface(1), ErrGeometry)
	assert.ErrorIs(t, m.AddTransfinite([]int{1}, 1, 0), ErrConfig)
	assert.ErrorIs(t, m.AddTransfinite([]int{1}, 5, -2), ErrConfig)
	assert.ErrorIs(t, m.AddSizeConstraint([]int{1}, 0), ErrConfig)
	assert.ErrorIs(t, m.AddPhysical(Dimension(3), "volume", 0, 1), ErrConfig)
}

func TestAddPhysical(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddPhysical(DimCurve, "wall", 0, 1, 2))
	require.NoError(t, m.AddPhysical(DimSurface, "wall", 0, 1), "names are scoped per dimension")
	require.NoError(t, m.AddPhysical(DimCurve, "inlet", 5, 3))
	require.NoError(t, m.AddPhysical(DimCurve, "", 7, 4))

	assert.ErrorIs(t, m.AddPhysical(DimCurve, "wall", 0, 9), ErrDuplicate)
	assert.ErrorIs(t, m.AddPhysical(DimCurve, "outlet", 5, 9), ErrDuplicate)
	assert.ErrorIs(t, m.AddPhysical(DimCurve, "", 7, 9), ErrDuplicate)
	assert.ErrorIs(t, m.AddPhysical(DimCurve, "", 0, 9), ErrSyntax)
	assert.ErrorIs(t, m.AddPhysical(DimCurve, "empty", 0), ErrReference)

	g, ok := m.Physical(DimCurve, "wall")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, g.Members)
	g, ok = m.PhysicalByTag(DimCurve, 7)
	require.True(t, ok)
	assert.Equal(t, `Physical Line(7)`, g.String())
	assert.Equal(t, `Physical Surface("wall")`, PhysicalGroup{Dim: DimSurface, Name: "wall"}.String())

	g, ok = m.PhysicalByTag(DimCurve, 5)
	require.True(t, ok)
	assert.Equal(t, "inlet", g.Name)
	_, ok = m.PhysicalByTag(DimCurve, 6)
	assert.False(t, ok)

	var keys []string
	for _, g := range m.PhysicalGroups() {
		keys = append(keys, g.String())
	}
	assert.Equal(t, []string{`Physical Line("wall")`, `Physical Line("inlet")`, `Physical Line(7)`, `Physical Surface("wall")`}, keys)
}

func TestPhysicalNameAndTagAreDistinct(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddPhysical(DimPoint, "", 5, 1))
	require.NoError(t, m.AddPhysical(DimPoint, "5", 0, 2))
	assert.ErrorIs(t, m.AddPhysical(DimPoint, "5", 0, 3), ErrDuplicate)
	assert.ErrorIs(t, m.AddPhysical(DimPoint, "other", 5, 3), ErrDuplicate)

	g, ok := m.Physical(DimPoint, "5")
	require.True(t, ok)
	assert.Equal(t, []int{2}, g.Members)
	g, ok = m.PhysicalByTag(DimPoint, 5)
	require.True(t, ok)
	assert.Equal(t, []int{1}, g.Members)
	assert.Equal(t, 2, m.Counts().Physicals)
}

func TestModelAccessorsAreSorted(t *testing.T) {
	m := NewModel()
	for _, id := range []int{9, 3, 7, 1} {
		require.NoError(t, m.AddPoint(id, float64(id), 0, 0))
	}
	require.NoError(t, m.AddCircle(8, 1, 3, 9))
	require.NoError(t, m.AddLine(2, 1, 3))
	require.NoError(t, m.SetMeshOption("RecombineAll", 1))
	require.NoError(t, m.SetMeshOption("Algorithm", 8))
	m.AddRecombine(5, 2, 5)

	var ids []int
	for _, p := range m.Points() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 3, 7, 9}, ids)

	ids = ids[:0]
	for _, c := range m.Curves() {
		ids = append(ids, c.CurveID())
	}
	assert.Equal(t, []int{2, 8}, ids)

	want := []MeshOption{{Name: "Algorithm", Value: 8}, {Name: "RecombineAll", Value: 1}}
	if diff := cmp.Diff(want, m.MeshOptions()); diff != "" {
		t.Errorf("MeshOptions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{2, 5}, m.RecombinedSurfaces())
}

func TestCounts(t *testing.T) {
	m := newPlate(t)
	assert.Equal(t, Counts{
		Points: 12, Lines: 8, Circles: 2, Loops: 1, Surfaces: 1, Physicals: 4, MeshOptions: 6,
	}, m.Counts())
	assert.Equal(t, Counts{}, NewModel().Counts())
}
