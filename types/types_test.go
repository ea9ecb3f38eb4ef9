package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gogeo/geometry"
)

func TestTypes(t *testing.T) {
	{ // Test tag parsing
		tokens := []string{"WALL", "Periodic-1", "Periodic-2", "Wall-22", "Wall-top", "Neuman-10", "no_slip", "fixed_left", "plate"}
		flags := []BCFLAG{BC_Wall, BC_Periodic, BC_Periodic, BC_Wall, BC_Wall, BC_Neuman, BC_Wall, BC_Fixed, BC_None}
		labels := []string{"", "1", "2", "22", "top", "10", "", "left", ""}
		for i, token := range tokens {
			bt := NewBCTAG(token)
			assert.Equal(t, flags[i], bt.GetFLAG(), token)
			assert.Equal(t, labels[i], bt.GetLabel(), token)
		}
	}
	{ // Test classification of groups
		assert.Equal(t, BC_Load, Classify(geometry.PhysicalGroup{Dim: geometry.DimCurve, Name: "load"}))
		assert.Equal(t, BC_None, Classify(geometry.PhysicalGroup{Dim: geometry.DimCurve, Name: "edge"}))
		assert.Equal(t, BC_Material, Classify(geometry.PhysicalGroup{Dim: geometry.DimSurface, Name: "plate"}))
		assert.Equal(t, BC_Material, Classify(geometry.PhysicalGroup{Dim: geometry.DimSurface, Tag: 3}))
	}
	assert.Equal(t, "Farfield", BC_Far.String())
	assert.Equal(t, "Unknown", BCFLAG(200).String())
}
