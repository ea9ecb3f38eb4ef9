package types

import (
	"strings"

	"github.com/notargets/gogeo/geometry"
)

// BCFLAG is the downstream role a physical group name implies, so that a
// solver reading the mesh knows which boundary condition a tag stands for.
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Out
	BC_Wall
	BC_Slip
	BC_Symmetry
	BC_Periodic
	BC_Far
	BC_Dirichlet
	BC_Neuman
	BC_Fixed
	BC_Load
	BC_Interface
	BC_Material
)

var bcNames = [...]string{
	"None", "Inflow", "Outflow", "Wall", "Slip", "Symmetry", "Periodic", "Farfield",
	"Dirichlet", "Neumann", "Fixed", "Load", "Interface", "Material",
}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcNames) {
		return bcNames[bc]
	}
	return "Unknown"
}

// BCNameMap keys are lower case. Applications may add their own names.
var BCNameMap = map[string]BCFLAG{
	"inflow":    BC_In,
	"in":        BC_In,
	"inlet":     BC_In,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"outlet":    BC_Out,
	"exit":      BC_Out,
	"wall":      BC_Wall,
	"noslip":    BC_Wall,
	"no_slip":   BC_Wall,
	"slip":      BC_Slip,
	"symmetry":  BC_Symmetry,
	"symmetric": BC_Symmetry,
	"periodic":  BC_Periodic,
	"far":       BC_Far,
	"farfield":  BC_Far,
	"far_field": BC_Far,
	"dirichlet": BC_Dirichlet,
	"neuman":    BC_Neuman,
	"neumann":   BC_Neuman,
	"fixed":     BC_Fixed,
	"clamped":   BC_Fixed,
	"support":   BC_Fixed,
	"load":      BC_Load,
	"force":     BC_Load,
	"pressure":  BC_Load,
	"traction":  BC_Load,
	"interface": BC_Interface,
	"material":  BC_Material,
	"domain":    BC_Material,
	"body":      BC_Material,
}

// BCTAG is a physical group name of the form "<kind>[-label]", for example
// "Wall-top" or "Periodic-1".
type BCTAG string

func NewBCTAG(name string) BCTAG {
	return BCTAG(strings.TrimSpace(name))
}

func (bt BCTAG) split() (kind, label string) {
	s := string(bt)
	if i := strings.IndexAny(s, "-_ "); i >= 0 {
		// Names such as "no_slip" are a kind on their own.
		if _, ok := BCNameMap[strings.ToLower(s)]; ok {
			return s, ""
		}
		return s[:i], s[i+1:]
	}
	return s, ""
}

// GetFLAG returns BC_None for names that match no known kind.
func (bt BCTAG) GetFLAG() BCFLAG {
	kind, _ := bt.split()
	return BCNameMap[strings.ToLower(kind)]
}

func (bt BCTAG) GetLabel() string {
	_, label := bt.split()
	return label
}

// Classify returns the role of a physical group. Unnamed or unrecognised
// surface groups are taken to be material regions.
func Classify(g geometry.PhysicalGroup) BCFLAG {
	flag := NewBCTAG(g.Name).GetFLAG()
	if flag == BC_None && g.Dim == geometry.DimSurface {
		return BC_Material
	}
	return flag
}
