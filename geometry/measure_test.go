package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeasurePlate(t *testing.T) {
	m := newPlate(t)

	assert.Equal(t, Box{Min: r3.Vec{}, Max: r3.Vec{X: 8, Y: 5}}, m.Bounds())
	assert.InDelta(t, math.Sqrt(89), m.Bounds().Diagonal(), 1e-12)

	length, err := m.LoopLength(22)
	require.NoError(t, err)
	assert.InDelta(t, 26+math.Pi/2, length, 1e-9)

	l, err := m.CurveLength(20)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/4, l, 1e-12)

	// 8 x 5 less the notch and the corners cut off by the two fillets.
	wantArea := 40 - 1 - 2*(0.25-math.Pi/16)
	area, err := m.LoopArea(22)
	require.NoError(t, err)
	assert.InDelta(t, -wantArea, area, 1e-9)

	o, err := m.LoopOrientation(22)
	require.NoError(t, err)
	assert.Equal(t, Clockwise, o)
	assert.Equal(t, "clockwise", o.String())

	area, err = m.SurfaceArea(23)
	require.NoError(t, err)
	assert.InDelta(t, wantArea, area, 1e-9)
}

func TestLoopOrientation(t *testing.T) {
	m := NewModel()
	loop := square(t, m, 0, 0, 0, 2)
	require.NoError(t, m.AddLoop(30, -13, -12, -11, -10))

	area, err := m.LoopArea(loop)
	require.NoError(t, err)
	assert.InDelta(t, 4, area, 1e-12)
	o, err := m.LoopOrientation(loop)
	require.NoError(t, err)
	assert.Equal(t, CounterClockwise, o)

	area, err = m.LoopArea(30)
	require.NoError(t, err)
	assert.InDelta(t, -4, area, 1e-12)
	o, err = m.LoopOrientation(30)
	require.NoError(t, err)
	assert.Equal(t, Clockwise, o)
}

func TestMeasureErrors(t *testing.T) {
	m := newPlate(t)
	_, err := m.CurveLength(99)
	assert.ErrorIs(t, err, ErrReference)
	_, err = m.LoopLength(99)
	assert.ErrorIs(t, err, ErrReference)
	_, err = m.SurfaceArea(99)
	assert.ErrorIs(t, err, ErrReference)

	require.NoError(t, m.AddLoop(40, 12, -12))
	_, err = m.LoopArea(40)
	assert.ErrorIs(t, err, ErrGeometry)
	_, err = m.LoopOrientation(40)
	assert.ErrorIs(t, err, ErrGeometry)
	assert.Equal(t, Box{}, NewModel().Bounds())
}
