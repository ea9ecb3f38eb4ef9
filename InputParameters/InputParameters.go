package InputParameters

import (
	"fmt"
	"io"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gogeo/geometry"
)

// Parameters obtained from the YAML check parameters file
type CheckParameters struct {
	Title       string             `json:"Title"`
	Tolerance   float64            `json:"Tolerance"`
	ArcSegments int                `json:"ArcSegments"`
	Strict      *bool              `json:"Strict"`
	WarnUnused  *bool              `json:"WarnUnused"`
	MeshOptions map[string]float64 `json:"MeshOptions"` // Defaults applied when the script does not set them
}

func (ip *CheckParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Apply overlays the values present in the file onto params.
func (ip *CheckParameters) Apply(params geometry.CheckParams) geometry.CheckParams {
	if ip.Tolerance > 0 {
		params.Tolerance = ip.Tolerance
	}
	if ip.ArcSegments > 0 {
		params.ArcSegments = ip.ArcSegments
	}
	if ip.Strict != nil {
		params.Strict = *ip.Strict
	}
	if ip.WarnUnused != nil {
		params.WarnUnused = *ip.WarnUnused
	}
	return params
}

// ApplyMeshDefaults sets every default mesh option the model leaves unset
// and returns the names it added.
func (ip *CheckParameters) ApplyMeshDefaults(m *geometry.Model) (added []string, err error) {
	for _, name := range ip.sortedOptions() {
		if _, ok := m.MeshOption(name); ok {
			continue
		}
		if err = m.SetMeshOption(name, ip.MeshOptions[name]); err != nil {
			return
		}
		added = append(added, name)
	}
	return
}

func (ip *CheckParameters) sortedOptions() []string {
	keys := make([]string, len(ip.MeshOptions))
	i := 0
	for k := range ip.MeshOptions {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	return keys
}

func (ip *CheckParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "%8.3g\t\t= Tolerance\n", ip.Tolerance)
	fmt.Fprintf(w, "[%d]\t\t\t= Arc Segments\n", ip.ArcSegments)
	if ip.Strict != nil {
		fmt.Fprintf(w, "[%t]\t\t\t= Strict\n", *ip.Strict)
	}
	if ip.WarnUnused != nil {
		fmt.Fprintf(w, "[%t]\t\t\t= Warn Unused\n", *ip.WarnUnused)
	}
	for _, key := range ip.sortedOptions() {
		fmt.Fprintf(w, "MeshOptions[%s] = %v\n", key, ip.MeshOptions[key])
	}
}
