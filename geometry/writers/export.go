package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gogeo/geometry"
)

type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

func NewFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "":
		return YAML, nil
	case "json":
		return JSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q, want yaml or json", s)
}

// Export writes the model's Document in the requested format.
func Export(w io.Writer, m *geometry.Model, format Format) error {
	var (
		data []byte
		err  error
		doc  = m.Document()
	)
	switch format {
	case YAML:
		data, err = yaml.Marshal(doc)
	case JSON:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshal %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
