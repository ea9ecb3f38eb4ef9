package writers

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gogeo/geometry"
	"github.com/notargets/gogeo/geometry/readers"
)

func readPlate(t *testing.T, name string) *geometry.Model {
	t.Helper()
	m, err := readers.ReadGeoFile("../readers/testdata/" + name)
	require.NoError(t, err)
	return m
}

func TestCanonicalPlate(t *testing.T) {
	want, err := os.ReadFile("testdata/plate_canonical.geo")
	require.NoError(t, err)

	for _, name := range []string{"plate.geo", "plate_shuffled.geo"} {
		got, err := Canonical(readPlate(t, name))
		require.NoError(t, err)
		assert.Equal(t, string(want), got, name)
	}
}

func TestCanonicalIsFixedPoint(t *testing.T) {
	m := readPlate(t, "plate.geo")
	require.NoError(t, m.AddPointWithSize(30, 1.0/3, -2e-7, 1e21, 0.125))
	require.NoError(t, m.AddTransfinite([]int{12, -21}, 9, 1.1))
	require.NoError(t, m.AddTransfinite([]int{13}, 4, 0))
	require.NoError(t, m.AddSizeConstraint([]int{0, 1}, 0.05))
	require.NoError(t, m.AddPhysical(geometry.DimCurve, "", 4, 13))
	require.NoError(t, m.AddPhysical(geometry.DimCurve, `say "hi"`, 9, 17))
	m.AddRecombine(23)

	first, err := Canonical(m)
	require.NoError(t, err)
	assert.Contains(t, first, "Point(30) = {0.3333333333333333, -2e-07, 1e+21, 0.125};")
	assert.Contains(t, first, "Transfinite Line {12, -21} = 9 Using Progression 1.1;")
	assert.Contains(t, first, "Transfinite Line {13} = 4;")
	assert.Contains(t, first, "Recombine Surface {23};")
	assert.Contains(t, first, "Characteristic Length {0, 1} = 0.05;")
	assert.Contains(t, first, "Physical Line(4) = {13};")

	back, err := readers.ParseGeo(strings.NewReader(first))
	require.NoError(t, err)
	second, err := Canonical(back)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCanonicalNameEscapes(t *testing.T) {
	names := []string{"a\tb", "line\nbreak", `back\slash`, `say "hi"`, "cr\r"}
	m := readPlate(t, "plate.geo")
	for i, name := range names {
		require.NoError(t, m.AddPhysical(geometry.DimPoint, name, 0, i))
	}
	first, err := Canonical(m)
	require.NoError(t, err)
	assert.Contains(t, first, `Physical Point("a\tb") = {0};`)
	assert.Contains(t, first, `Physical Point("line\nbreak") = {1};`)
	assert.Contains(t, first, `Physical Point("back\\slash") = {2};`)

	back, err := readers.ParseGeo(strings.NewReader(first))
	require.NoError(t, err)
	for _, name := range names {
		_, ok := back.Physical(geometry.DimPoint, name)
		assert.True(t, ok, "%q", name)
	}
	second, err := Canonical(back)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(math.Copysign(0, -1)))
	assert.Equal(t, "4.5", FormatFloat(4.5))
	assert.Equal(t, "-1e-09", FormatFloat(-1e-9))
	assert.Equal(t, "0.1", FormatFloat(0.1))
}

func TestExport(t *testing.T) {
	m := readPlate(t, "plate.geo")
	want, err := Canonical(m)
	require.NoError(t, err)

	for _, name := range []string{"yaml", "JSON"} {
		t.Run(name, func(t *testing.T) {
			format, err := NewFormat(name)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, m, format))

			back, err := readers.ParseDocument(buf.Bytes())
			require.NoError(t, err)
			got, err := Canonical(back)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, m, JSON))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "lineLoops")
	assert.NotContains(t, doc, "transfiniteLines", "empty sections are omitted")

	_, err = NewFormat("xml")
	assert.Error(t, err)
	assert.Error(t, Export(&buf, m, Format("xml")))
}
