package writers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/gogeo/geometry"
)

// Header opens every canonical file.
const Header = "// Canonical geometry written by gogeo"

var nameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// quoteName writes a name the script lexer reads back unchanged.
func quoteName(name string) string {
	return `"` + nameEscaper.Replace(name) + `"`
}

// FormatFloat uses the shortest representation that parses back to the
// same float64.
func FormatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

func joinFloats(vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatFloat(v)
	}
	return strings.Join(parts, ", ")
}

// WriteGeo emits the model in canonical form: fixed section order, ids
// ascending within each section, one declaration per line. Two models with
// the same declarations produce identical output whatever order they were
// read in.
func WriteGeo(w io.Writer, m *geometry.Model) error {
	bw := bufio.NewWriter(w)
	section := func(lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintln(bw)
		for _, l := range lines {
			fmt.Fprintln(bw, l)
		}
	}
	fmt.Fprintln(bw, Header)

	var lines []string
	for _, p := range m.Points() {
		vals := []float64{p.Coord.X, p.Coord.Y, p.Coord.Z}
		if p.MeshSize > 0 {
			vals = append(vals, p.MeshSize)
		}
		lines = append(lines, fmt.Sprintf("Point(%d) = {%s};", p.ID, joinFloats(vals...)))
	}
	section(lines)

	lines = lines[:0]
	for _, c := range m.Curves() {
		switch cv := c.(type) {
		case geometry.Line:
			lines = append(lines, fmt.Sprintf("Line(%d) = {%d, %d};", cv.ID, cv.Start, cv.End))
		case geometry.Circle:
			lines = append(lines, fmt.Sprintf("Circle(%d) = {%d, %d, %d};", cv.ID, cv.Start, cv.Center, cv.End))
		}
	}
	section(lines)

	lines = lines[:0]
	for _, l := range m.Loops() {
		lines = append(lines, fmt.Sprintf("Line Loop(%d) = {%s};", l.ID, joinInts(l.Edges)))
	}
	section(lines)

	lines = lines[:0]
	for _, s := range m.Surfaces() {
		lines = append(lines, fmt.Sprintf("Plane Surface(%d) = {%s};", s.ID, joinInts(s.Loops)))
	}
	section(lines)

	lines = lines[:0]
	if ids := m.RecombinedSurfaces(); len(ids) > 0 {
		lines = append(lines, fmt.Sprintf("Recombine Surface {%s};", joinInts(ids)))
	}
	for _, t := range m.TransfiniteCurves() {
		l := fmt.Sprintf("Transfinite Line {%s} = %d", joinInts(t.Curves), t.Nodes)
		if t.Progression != 0 {
			l += " Using Progression " + FormatFloat(t.Progression)
		}
		lines = append(lines, l+";")
	}
	for _, s := range m.SizeConstraints() {
		lines = append(lines, fmt.Sprintf("Characteristic Length {%s} = %s;", joinInts(s.Points), FormatFloat(s.Size)))
	}
	section(lines)

	lines = lines[:0]
	for _, g := range m.PhysicalGroups() {
		var label string
		switch {
		case g.Name != "" && g.Tag != 0:
			label = fmt.Sprintf("%s, %d", quoteName(g.Name), g.Tag)
		case g.Name != "":
			label = quoteName(g.Name)
		default:
			label = strconv.Itoa(g.Tag)
		}
		lines = append(lines, fmt.Sprintf("Physical %s(%s) = {%s};", g.Dim, label, joinInts(g.Members)))
	}
	section(lines)

	lines = lines[:0]
	for _, o := range m.MeshOptions() {
		lines = append(lines, fmt.Sprintf("Mesh.%s = %s;", o.Name, FormatFloat(o.Value)))
	}
	section(lines)

	return bw.Flush()
}

// Canonical is WriteGeo into a string.
func Canonical(m *geometry.Model) (string, error) {
	var sb strings.Builder
	if err := WriteGeo(&sb, m); err != nil {
		return "", err
	}
	return sb.String(), nil
}
