package readers

import (
	"errors"

	"github.com/notargets/gogeo/geometry"
	"github.com/notargets/gogeo/utils"
)

type parser struct {
	toks  []token
	pos   int
	vars  map[string]float64
	model *geometry.Model
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(off int) token {
	if p.pos+off < len(p.toks) {
		return p.toks[p.pos+off]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, text string) (token, error) {
	t := p.next()
	if t.kind != kind || (text != "" && t.text != text) {
		want := text
		if want == "" {
			want = kind.String()
		}
		return t, geometry.SyntaxErrorf(t.line, t.col, "expected %q, found %s", want, t)
	}
	return t, nil
}

func (p *parser) keyword(words ...string) error {
	for _, w := range words {
		if _, err := p.expect(tokIdent, w); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) end() error {
	_, err := p.expect(tokPunct, ";")
	return err
}

// at pins a model error to the statement that caused it.
func at(t token, err error) error {
	var ge *geometry.Error
	if errors.As(err, &ge) && ge.Line == 0 {
		pinned := *ge
		pinned.Line, pinned.Column = t.line, t.col
		return &pinned
	}
	return err
}

func (p *parser) parse() error {
	for p.peek().kind != tokEOF {
		if err := p.statement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) statement() error {
	t := p.peek()
	if t.is(tokPunct, ";") {
		p.next()
		return nil
	}
	if t.kind != tokIdent {
		return geometry.SyntaxErrorf(t.line, t.col, "expected a statement, found %s", t)
	}
	second := p.peekAt(1)
	var err error
	switch {
	case t.text == "Point" && second.is(tokPunct, "("):
		err = p.point()
	case (t.text == "Line" || t.text == "Curve") && second.is(tokIdent, "Loop"):
		err = p.loop()
	case t.text == "Line" && second.is(tokPunct, "("):
		err = p.line()
	case t.text == "Circle" && second.is(tokPunct, "("):
		err = p.circle()
	case t.text == "Plane" && second.is(tokIdent, "Surface"):
		err = p.surface()
	case t.text == "Physical":
		err = p.physical()
	case t.text == "Mesh" && second.is(tokPunct, "."):
		err = p.meshOption()
	case t.text == "Recombine" && second.is(tokIdent, "Surface"):
		err = p.recombine()
	case t.text == "Transfinite" && (second.is(tokIdent, "Line") || second.is(tokIdent, "Curve")):
		err = p.transfinite()
	case t.text == "Characteristic" && second.is(tokIdent, "Length"),
		t.text == "MeshSize" && second.is(tokPunct, "{"):
		err = p.sizeConstraint()
	case second.is(tokPunct, "="):
		err = p.assignment()
	default:
		return geometry.SyntaxErrorf(t.line, t.col, "unsupported statement starting with %s", t)
	}
	return at(t, err)
}

// id := "(" integer ")"
func (p *parser) id() (int, error) {
	if _, err := p.expect(tokPunct, "("); err != nil {
		return 0, err
	}
	id, err := p.integer()
	if err != nil {
		return 0, err
	}
	_, err = p.expect(tokPunct, ")")
	return id, err
}

// declaration reads `(id) = {list};` after the keywords.
func (p *parser) declaration() (id int, vals []float64, err error) {
	if id, err = p.id(); err != nil {
		return
	}
	if _, err = p.expect(tokPunct, "="); err != nil {
		return
	}
	if vals, err = p.list(); err != nil {
		return
	}
	err = p.end()
	return
}

// intDeclaration is a declaration whose values are ids; t is the statement's
// first token.
func (p *parser) intDeclaration(t token, name string, min, max int) (id int, refs []int, err error) {
	var vals []float64
	if id, vals, err = p.declaration(); err != nil {
		return
	}
	if len(vals) < min || (max > 0 && len(vals) > max) {
		return 0, nil, countError(t, name, min, max, len(vals))
	}
	refs = make([]int, len(vals))
	for i, v := range vals {
		if !isID(v) {
			return 0, nil, geometry.SyntaxErrorf(t.line, t.col, "%s expects integer ids, got %g", name, v)
		}
		refs[i] = int(v)
	}
	return
}

func countError(t token, name string, min, max, got int) error {
	switch {
	case min == max:
		return geometry.SyntaxErrorf(t.line, t.col, "%s expects %d values, got %d", name, min, got)
	case max <= 0:
		return geometry.SyntaxErrorf(t.line, t.col, "%s expects at least %d values, got %d", name, min, got)
	}
	return geometry.SyntaxErrorf(t.line, t.col, "%s expects %d to %d values, got %d", name, min, max, got)
}

func (p *parser) point() error {
	t := p.next()
	id, vals, err := p.declaration()
	if err != nil {
		return err
	}
	if len(vals) != 3 && len(vals) != 4 {
		return countError(t, "Point", 3, 4, len(vals))
	}
	if !utils.IsFinite(vals...) {
		return geometry.SyntaxErrorf(t.line, t.col, "Point(%d) has a non-finite coordinate %v", id, vals)
	}
	var size float64
	if len(vals) == 4 {
		size = vals[3]
	}
	return p.model.AddPointWithSize(id, vals[0], vals[1], vals[2], size)
}

func (p *parser) line() error {
	t := p.next()
	id, refs, err := p.intDeclaration(t, "Line", 2, 2)
	if err != nil {
		return err
	}
	return p.model.AddLine(id, refs[0], refs[1])
}

func (p *parser) circle() error {
	t := p.next()
	id, refs, err := p.intDeclaration(t, "Circle", 3, 3)
	if err != nil {
		return err
	}
	return p.model.AddCircle(id, refs[0], refs[1], refs[2])
}

func (p *parser) loop() error {
	t := p.next()
	p.next()
	id, refs, err := p.intDeclaration(t, "Line Loop", 1, 0)
	if err != nil {
		return err
	}
	return p.model.AddLoop(id, refs...)
}

func (p *parser) surface() error {
	t := p.peek()
	if err := p.keyword("Plane", "Surface"); err != nil {
		return err
	}
	id, refs, err := p.intDeclaration(t, "Plane Surface", 1, 0)
	if err != nil {
		return err
	}
	return p.model.AddSurface(id, refs...)
}

var physicalKinds = map[string]geometry.Dimension{
	"Point":   geometry.DimPoint,
	"Line":    geometry.DimCurve,
	"Curve":   geometry.DimCurve,
	"Surface": geometry.DimSurface,
}

// physical := "Physical" kind "(" (string ["," integer] | integer) ")" "=" list ";"
func (p *parser) physical() error {
	p.next()
	kind, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}
	dim, ok := physicalKinds[kind.text]
	if !ok {
		return geometry.SyntaxErrorf(kind.line, kind.col, "unsupported physical kind %s", kind.text)
	}
	if _, err = p.expect(tokPunct, "("); err != nil {
		return err
	}
	var (
		name string
		tag  int
	)
	if p.peek().kind == tokString {
		name = p.next().text
		if p.peek().is(tokPunct, ",") {
			p.next()
			if tag, err = p.integer(); err != nil {
				return err
			}
		}
	} else if tag, err = p.integer(); err != nil {
		return err
	}
	if _, err = p.expect(tokPunct, ")"); err != nil {
		return err
	}
	if _, err = p.expect(tokPunct, "="); err != nil {
		return err
	}
	members, err := p.intList()
	if err != nil {
		return err
	}
	if err = p.end(); err != nil {
		return err
	}
	return p.model.AddPhysical(dim, name, tag, members...)
}

// meshOption := "Mesh" "." ident "=" expr ";"
func (p *parser) meshOption() error {
	p.next()
	p.next()
	name, err := p.expect(tokIdent, "")
	if err != nil {
		return err
	}
	if _, err = p.expect(tokPunct, "="); err != nil {
		return err
	}
	v, err := p.expr()
	if err != nil {
		return err
	}
	if !utils.IsFinite(v) {
		return geometry.SyntaxErrorf(name.line, name.col, "Mesh.%s has a non-finite value", name.text)
	}
	if err = p.end(); err != nil {
		return err
	}
	return p.model.SetMeshOption(name.text, v)
}

func (p *parser) recombine() error {
	p.next()
	p.next()
	ids, err := p.intList()
	if err != nil {
		return err
	}
	if err = p.end(); err != nil {
		return err
	}
	p.model.AddRecombine(ids...)
	return nil
}

// transfinite := "Transfinite" ("Line"|"Curve") list "=" integer ["Using" "Progression" expr] ";"
func (p *parser) transfinite() error {
	p.next()
	p.next()
	ids, err := p.intList()
	if err != nil {
		return err
	}
	if _, err = p.expect(tokPunct, "="); err != nil {
		return err
	}
	nodes, err := p.integer()
	if err != nil {
		return err
	}
	var progression float64
	if p.peek().is(tokIdent, "Using") {
		p.next()
		if err = p.keyword("Progression"); err != nil {
			return err
		}
		if progression, err = p.expr(); err != nil {
			return err
		}
	}
	if err = p.end(); err != nil {
		return err
	}
	return p.model.AddTransfinite(ids, nodes, progression)
}

// sizeConstraint := ("Characteristic" "Length" | "MeshSize") list "=" expr ";"
func (p *parser) sizeConstraint() error {
	if p.next().text == "Characteristic" {
		p.next()
	}
	ids, err := p.intList()
	if err != nil {
		return err
	}
	if _, err = p.expect(tokPunct, "="); err != nil {
		return err
	}
	size, err := p.expr()
	if err != nil {
		return err
	}
	if err = p.end(); err != nil {
		return err
	}
	return p.model.AddSizeConstraint(ids, size)
}

var reserved = map[string]bool{
	"Point": true, "Line": true, "Curve": true, "Circle": true, "Plane": true,
	"Physical": true, "Mesh": true, "Pi": true,
}

// assignment := ident "=" expr ";"
func (p *parser) assignment() error {
	name := p.next()
	if reserved[name.text] {
		return geometry.SyntaxErrorf(name.line, name.col, "cannot assign to reserved word %s", name.text)
	}
	if _, ok := functions[name.text]; ok {
		return geometry.SyntaxErrorf(name.line, name.col, "cannot assign to function name %s", name.text)
	}
	p.next()
	v, err := p.expr()
	if err != nil {
		return err
	}
	if err = p.end(); err != nil {
		return err
	}
	p.vars[name.text] = v
	return nil
}
