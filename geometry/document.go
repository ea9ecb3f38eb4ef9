package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// Document is the serialisable form of a Model used for YAML and JSON
// export. Field tags follow encoding/json, which ghodss/yaml honours.
type Document struct {
	Points      []DocPoint       `json:"points,omitempty"`
	Lines       []DocLine        `json:"lines,omitempty"`
	Circles     []DocCircle      `json:"circles,omitempty"`
	Loops       []DocRefs        `json:"lineLoops,omitempty"`
	Surfaces    []DocRefs        `json:"planeSurfaces,omitempty"`
	Physicals   []DocPhysical    `json:"physicalGroups,omitempty"`
	MeshOptions []MeshOption     `json:"meshOptions,omitempty"`
	Recombine   []int            `json:"recombineSurfaces,omitempty"`
	Transfinite []Transfinite    `json:"transfiniteLines,omitempty"`
	SizeLimits  []SizeConstraint `json:"characteristicLengths,omitempty"`
}

type DocPoint struct {
	ID       int        `json:"id"`
	Coord    [3]float64 `json:"coord"`
	MeshSize float64    `json:"meshSize,omitempty"`
}

type DocLine struct {
	ID    int `json:"id"`
	Start int `json:"start"`
	End   int `json:"end"`
}

type DocCircle struct {
	ID     int `json:"id"`
	Start  int `json:"start"`
	Center int `json:"center"`
	End    int `json:"end"`
}

type DocRefs struct {
	ID   int   `json:"id"`
	Refs []int `json:"refs"`
}

type DocPhysical struct {
	Dim     string `json:"dim"`
	Name    string `json:"name,omitempty"`
	Tag     int    `json:"tag,omitempty"`
	Members []int  `json:"members"`
}

// Document captures the model in canonical order.
func (m *Model) Document() (doc Document) {
	for _, p := range m.Points() {
		doc.Points = append(doc.Points, DocPoint{
			ID:       p.ID,
			Coord:    [3]float64{p.Coord.X, p.Coord.Y, p.Coord.Z},
			MeshSize: p.MeshSize,
		})
	}
	for _, c := range m.Curves() {
		switch cv := c.(type) {
		case Line:
			doc.Lines = append(doc.Lines, DocLine{ID: cv.ID, Start: cv.Start, End: cv.End})
		case Circle:
			doc.Circles = append(doc.Circles, DocCircle{ID: cv.ID, Start: cv.Start, Center: cv.Center, End: cv.End})
		}
	}
	for _, l := range m.Loops() {
		doc.Loops = append(doc.Loops, DocRefs{ID: l.ID, Refs: l.Edges})
	}
	for _, s := range m.Surfaces() {
		doc.Surfaces = append(doc.Surfaces, DocRefs{ID: s.ID, Refs: s.Loops})
	}
	for _, g := range m.PhysicalGroups() {
		doc.Physicals = append(doc.Physicals, DocPhysical{
			Dim:     strings.ToLower(g.Dim.String()),
			Name:    g.Name,
			Tag:     g.Tag,
			Members: g.Members,
		})
	}
	doc.MeshOptions = m.MeshOptions()
	doc.Recombine = m.RecombinedSurfaces()
	doc.Transfinite = m.TransfiniteCurves()
	doc.SizeLimits = m.SizeConstraints()
	return
}

func parseDim(s string) (Dimension, error) {
	switch strings.ToLower(s) {
	case "point", "0":
		return DimPoint, nil
	case "line", "curve", "1":
		return DimCurve, nil
	case "surface", "2":
		return DimSurface, nil
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

// FromDocument rebuilds a model; every declaration error is reported.
func FromDocument(doc Document) (*Model, error) {
	var (
		m    = NewModel()
		errs []error
	)
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	for _, p := range doc.Points {
		add(m.AddPointWithSize(p.ID, p.Coord[0], p.Coord[1], p.Coord[2], p.MeshSize))
	}
	for _, l := range doc.Lines {
		add(m.AddLine(l.ID, l.Start, l.End))
	}
	for _, c := range doc.Circles {
		add(m.AddCircle(c.ID, c.Start, c.Center, c.End))
	}
	for _, l := range doc.Loops {
		add(m.AddLoop(l.ID, l.Refs...))
	}
	for _, s := range doc.Surfaces {
		add(m.AddSurface(s.ID, s.Refs...))
	}
	for _, g := range doc.Physicals {
		dim, err := parseDim(g.Dim)
		if err != nil {
			add(&Error{Kind: ErrSyntax, Entity: "physical group " + g.Name, Msg: err.Error()})
			continue
		}
		add(m.AddPhysical(dim, g.Name, g.Tag, g.Members...))
	}
	for _, o := range doc.MeshOptions {
		add(m.SetMeshOption(o.Name, o.Value))
	}
	m.AddRecombine(doc.Recombine...)
	for _, t := range doc.Transfinite {
		add(m.AddTransfinite(t.Curves, t.Nodes, t.Progression))
	}
	for _, s := range doc.SizeLimits {
		add(m.AddSizeConstraint(s.Points, s.Size))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}
