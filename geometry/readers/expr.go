package readers

import (
	"math"
	"strconv"

	"github.com/notargets/gogeo/geometry"
	"github.com/notargets/gogeo/utils"
)

var constants = map[string]float64{
	"Pi": math.Pi,
}

var functions = map[string]func(args []float64) float64{
	"Sqrt":  func(a []float64) float64 { return math.Sqrt(a[0]) },
	"Sin":   func(a []float64) float64 { return math.Sin(a[0]) },
	"Cos":   func(a []float64) float64 { return math.Cos(a[0]) },
	"Tan":   func(a []float64) float64 { return math.Tan(a[0]) },
	"Asin":  func(a []float64) float64 { return math.Asin(a[0]) },
	"Acos":  func(a []float64) float64 { return math.Acos(a[0]) },
	"Atan":  func(a []float64) float64 { return math.Atan(a[0]) },
	"Atan2": func(a []float64) float64 { return math.Atan2(a[0], a[1]) },
	"Abs":   func(a []float64) float64 { return math.Abs(a[0]) },
	"Fabs":  func(a []float64) float64 { return math.Abs(a[0]) },
	"Exp":   func(a []float64) float64 { return math.Exp(a[0]) },
	"Log":   func(a []float64) float64 { return math.Log(a[0]) },
	"Floor": func(a []float64) float64 { return math.Floor(a[0]) },
	"Ceil":  func(a []float64) float64 { return math.Ceil(a[0]) },
}

var arity = map[string]int{"Atan2": 2}

// expr := term (("+" | "-") term)*
func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for p.peek().is(tokPunct, "+") || p.peek().is(tokPunct, "-") {
		op := p.next()
		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op.text == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

// term := unary (("*" | "/" | "%") unary)*
func (p *parser) term() (float64, error) {
	v, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if !(t.is(tokPunct, "*") || t.is(tokPunct, "/") || t.is(tokPunct, "%")) {
			return v, nil
		}
		p.next()
		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}
		switch t.text {
		case "*":
			v *= rhs
		case "/":
			if rhs == 0 {
				return 0, geometry.SyntaxErrorf(t.line, t.col, "division by zero")
			}
			v /= rhs
		case "%":
			if rhs == 0 {
				return 0, geometry.SyntaxErrorf(t.line, t.col, "modulo by zero")
			}
			v = math.Mod(v, rhs)
		}
	}
}

// unary := ("-" | "+") unary | power
func (p *parser) unary() (float64, error) {
	if t := p.peek(); t.is(tokPunct, "-") || t.is(tokPunct, "+") {
		p.next()
		v, err := p.unary()
		if t.text == "-" {
			v = -v
		}
		return v, err
	}
	return p.power()
}

// power := primary ["^" unary]
func (p *parser) power() (float64, error) {
	base, err := p.primary()
	if err != nil {
		return 0, err
	}
	if p.peek().is(tokPunct, "^") {
		p.next()
		exp, err := p.unary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *parser) primary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return 0, geometry.SyntaxErrorf(t.line, t.col, "malformed number %s", t.text)
		}
		return v, nil
	case tokPunct:
		if t.text == "(" {
			v, err := p.expr()
			if err != nil {
				return 0, err
			}
			if _, err := p.expect(tokPunct, ")"); err != nil {
				return 0, err
			}
			return v, nil
		}
	case tokIdent:
		if fn, ok := functions[t.text]; ok {
			return p.call(t, fn)
		}
		if v, ok := p.vars[t.text]; ok {
			return v, nil
		}
		if v, ok := constants[t.text]; ok {
			return v, nil
		}
		return 0, geometry.SyntaxErrorf(t.line, t.col, "undefined variable %s", t.text)
	}
	return 0, geometry.SyntaxErrorf(t.line, t.col, "expected a value, found %s", t)
}

func (p *parser) call(name token, fn func([]float64) float64) (float64, error) {
	if _, err := p.expect(tokPunct, "("); err != nil {
		return 0, err
	}
	var args []float64
	for {
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		args = append(args, v)
		if !p.peek().is(tokPunct, ",") {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokPunct, ")"); err != nil {
		return 0, err
	}
	want := 1
	if n, ok := arity[name.text]; ok {
		want = n
	}
	if len(args) != want {
		return 0, geometry.SyntaxErrorf(name.line, name.col, "%s takes %d argument(s), got %d", name.text, want, len(args))
	}
	return fn(args), nil
}

// isID is false for fractions, NaN, infinities and values outside the int32
// range used for entity ids.
func isID(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32
}

// integer evaluates an expression that must be a whole number, such as an
// entity id.
func (p *parser) integer() (int, error) {
	t := p.peek()
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if !isID(v) {
		return 0, geometry.SyntaxErrorf(t.line, t.col, "expected an integer, got %g", v)
	}
	return int(v), nil
}

// list := "{" [item ("," item)*] "}"  with item := expr [":" expr [":" expr]]
func (p *parser) list() ([]float64, error) {
	if _, err := p.expect(tokPunct, "{"); err != nil {
		return nil, err
	}
	var out []float64
	if p.peek().is(tokPunct, "}") {
		p.next()
		return out, nil
	}
	for {
		t := p.peek()
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		if !p.peek().is(tokPunct, ":") {
			out = append(out, v)
		} else {
			p.next()
			hi, err := p.expr()
			if err != nil {
				return nil, err
			}
			step := 1.0
			if p.peek().is(tokPunct, ":") {
				p.next()
				if step, err = p.expr(); err != nil {
					return nil, err
				}
			}
			if !utils.IsFinite(v, hi, step) || step == 0 || (hi-v)/step < 0 || (hi-v)/step > 1e6 {
				return nil, geometry.SyntaxErrorf(t.line, t.col, "invalid range %g:%g:%g", v, hi, step)
			}
			for x := v; (step > 0 && x <= hi+1e-12) || (step < 0 && x >= hi-1e-12); x += step {
				out = append(out, x)
			}
		}
		if p.peek().is(tokPunct, "}") {
			p.next()
			return out, nil
		}
		if _, err := p.expect(tokPunct, ","); err != nil {
			return nil, err
		}
	}
}

// intList is a list whose items are all ids.
func (p *parser) intList() ([]int, error) {
	t := p.peek()
	vals, err := p.list()
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(vals))
	for i, v := range vals {
		if !isID(v) {
			return nil, geometry.SyntaxErrorf(t.line, t.col, "expected integer ids, got %g", v)
		}
		ids[i] = int(v)
	}
	return ids, nil
}
