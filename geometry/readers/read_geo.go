package readers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gogeo/geometry"
)

// ReadGeoFile reads a geometry description based on extension
func ReadGeoFile(filename string) (*geometry.Model, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".geo":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		m, err := ParseGeo(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return m, nil
	case ".yaml", ".yml", ".json":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		m, err := ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported geometry format: %s", ext)
	}
}

// ParseGeo reads a .geo script. Declarations are recorded as they appear and
// references are resolved once the whole script is read, so the order of
// declarations does not matter. Every undeclared reference is reported as an
// ErrReference.
func ParseGeo(r io.Reader) (*geometry.Model, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	toks, err := lex(string(src))
	if err != nil {
		return nil, err
	}
	p := &parser{
		toks:  toks,
		vars:  make(map[string]float64),
		model: geometry.NewModel(),
	}
	if err = p.parse(); err != nil {
		return nil, err
	}
	if err = p.model.Resolve(); err != nil {
		return nil, err
	}
	return p.model, nil
}

// ParseDocument reads the YAML or JSON form written by writers.Export.
func ParseDocument(data []byte) (*geometry.Model, error) {
	var doc geometry.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &geometry.Error{Kind: geometry.ErrSyntax, Msg: err.Error()}
	}
	m, err := geometry.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	if err = m.Resolve(); err != nil {
		return nil, err
	}
	return m, nil
}
