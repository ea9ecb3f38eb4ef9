package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// platePoints is an 8 x 5 plate with a unit notch in its left edge and two
// rounded top corners of radius 0.5.
var platePoints = [][3]float64{
	{0, 0, 0}, {8, 0, 0}, {8, 4.5, 0}, {7.5, 4.5, 0}, {7.5, 5, 0}, {0.5, 5, 0},
	{0.5, 4.5, 0}, {0, 4.5, 0}, {0, 3, 0}, {1, 3, 0}, {1, 2, 0}, {0, 2, 0},
}

func newPlate(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	for id, p := range platePoints {
		require.NoError(t, m.AddPoint(id, p[0], p[1], p[2]))
	}
	lines := map[int][2]int{
		12: {1, 0}, 13: {0, 11}, 14: {11, 10}, 15: {10, 9}, 16: {9, 8}, 17: {8, 7}, 19: {5, 4}, 21: {2, 1},
	}
	for id, l := range lines {
		require.NoError(t, m.AddLine(id, l[0], l[1]))
	}
	require.NoError(t, m.AddCircle(18, 7, 6, 5))
	require.NoError(t, m.AddCircle(20, 4, 3, 2))
	require.NoError(t, m.AddLoop(22, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21))
	require.NoError(t, m.AddSurface(23, 22))
	require.NoError(t, m.AddPhysical(DimSurface, "plate", 0, 23))
	require.NoError(t, m.AddPhysical(DimCurve, "fixed", 0, 12))
	require.NoError(t, m.AddPhysical(DimCurve, "load", 0, 19))
	require.NoError(t, m.AddPhysical(DimPoint, "corner", 0, 0))
	for name, v := range map[string]float64{
		"Algorithm": 8, "RecombineAll": 1, "ElementOrder": 2,
		"CharacteristicLengthMin": 0, "CharacteristicLengthMax": 0.25, "SaveGroupsOfNodes": 1,
	} {
		require.NoError(t, m.SetMeshOption(name, v))
	}
	return m
}

// square adds a unit square loop in the z=0 plane with points and lines
// numbered from base.
func square(t *testing.T, m *Model, base int, x0, y0, size float64) (loop int) {
	t.Helper()
	corners := [][2]float64{{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}}
	for i, c := range corners {
		require.NoError(t, m.AddPoint(base+i, c[0], c[1], 0))
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, m.AddLine(base+10+i, base+i, base+(i+1)%4))
	}
	loop = base + 20
	require.NoError(t, m.AddLoop(loop, base+10, base+11, base+12, base+13))
	return
}

func kinds(errs []error) (out []error) {
	for _, err := range errs {
		var ge *Error
		if errors.As(err, &ge) {
			out = append(out, ge.Kind)
		}
	}
	return
}

func entities(errs []error) (out []string) {
	for _, err := range errs {
		var ge *Error
		if errors.As(err, &ge) {
			out = append(out, ge.Entity)
		}
	}
	return
}
