package readers

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/notargets/gogeo/geometry"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

func (k tokenKind) String() string {
	return [...]string{"end of file", "identifier", "number", "string", "punctuation"}[k]
}

type token struct {
	kind      tokenKind
	text      string
	line, col int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

// unescape maps the character after a backslash inside a string.
func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return r
}

// lex splits a script into tokens, dropping // and /* */ comments.
func lex(src string) ([]token, error) {
	var (
		toks      []token
		rs        = []rune(src)
		i         int
		line, col = 1, 1
	)
	advance := func(n int) {
		for k := 0; k < n && i < len(rs); k++ {
			if rs[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i++
		}
	}
	peek := func(off int) rune {
		if i+off < len(rs) {
			return rs[i+off]
		}
		return 0
	}
	for i < len(rs) {
		r := rs[i]
		startLine, startCol := line, col
		switch {
		case unicode.IsSpace(r):
			advance(1)
		case r == '/' && peek(1) == '/':
			for i < len(rs) && rs[i] != '\n' {
				advance(1)
			}
		case r == '/' && peek(1) == '*':
			advance(2)
			for i < len(rs) && !(rs[i] == '*' && peek(1) == '/') {
				advance(1)
			}
			if i >= len(rs) {
				return nil, geometry.SyntaxErrorf(startLine, startCol, "unterminated block comment")
			}
			advance(2)
		case r == '"' || r == '\'':
			quote := r
			advance(1)
			var sb strings.Builder
			for i < len(rs) && rs[i] != quote {
				if rs[i] == '\n' {
					return nil, geometry.SyntaxErrorf(startLine, startCol, "unterminated string")
				}
				if rs[i] == '\\' && i+1 < len(rs) {
					advance(1)
					sb.WriteRune(unescape(rs[i]))
					advance(1)
					continue
				}
				sb.WriteRune(rs[i])
				advance(1)
			}
			if i >= len(rs) {
				return nil, geometry.SyntaxErrorf(startLine, startCol, "unterminated string")
			}
			advance(1)
			toks = append(toks, token{kind: tokString, text: sb.String(), line: startLine, col: startCol})
		case unicode.IsDigit(r) || (r == '.' && unicode.IsDigit(peek(1))):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.') {
				j++
			}
			if j < len(rs) && (rs[j] == 'e' || rs[j] == 'E') {
				k := j + 1
				if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
					k++
				}
				if k < len(rs) && unicode.IsDigit(rs[k]) {
					for k < len(rs) && unicode.IsDigit(rs[k]) {
						k++
					}
					j = k
				}
			}
			text := string(rs[i:j])
			advance(j - i)
			toks = append(toks, token{kind: tokNumber, text: text, line: startLine, col: startCol})
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(rs) && (unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j]) || rs[j] == '_') {
				j++
			}
			text := string(rs[i:j])
			advance(j - i)
			toks = append(toks, token{kind: tokIdent, text: text, line: startLine, col: startCol})
		case strings.ContainsRune("(){},;=:+-*/^%.", r):
			advance(1)
			toks = append(toks, token{kind: tokPunct, text: string(r), line: startLine, col: startCol})
		default:
			return nil, geometry.SyntaxErrorf(startLine, startCol, "unexpected character %q", r)
		}
	}
	toks = append(toks, token{kind: tokEOF, line: line, col: col})
	return toks, nil
}
