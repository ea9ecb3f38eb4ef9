package geometry

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type optionKind uint8

const (
	optBool optionKind = iota
	optInt
	optFloat
)

type optionSpec struct {
	kind     optionKind
	min, max float64   // inclusive bounds
	minOpen  bool      // lower bound is exclusive
	allowed  []float64 // when set, the value must be one of these
}

func (o optionSpec) check(v float64) error {
	switch o.kind {
	case optBool:
		if v != 0 && v != 1 {
			return fmt.Errorf("expects 0 or 1, got %g", v)
		}
		return nil
	case optInt:
		if v != math.Trunc(v) {
			return fmt.Errorf("expects an integer, got %g", v)
		}
	}
	if len(o.allowed) > 0 {
		for _, a := range o.allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("expects one of %v, got %g", o.allowed, v)
	}
	if v < o.min || (o.minOpen && v == o.min) || v > o.max {
		lo := "["
		if o.minOpen {
			lo = "("
		}
		return fmt.Errorf("expects a value in %s%g, %g], got %g", lo, o.min, o.max, v)
	}
	return nil
}

var (
	anyInt      = optionSpec{kind: optInt, min: math.Inf(-1), max: math.Inf(1)}
	nonNegInt   = optionSpec{kind: optInt, min: 0, max: math.Inf(1)}
	nonNegFloat = optionSpec{kind: optFloat, min: 0, max: math.Inf(1)}
	positive    = optionSpec{kind: optFloat, min: 0, minOpen: true, max: math.Inf(1)}
	boolean     = optionSpec{kind: optBool}
)

func intRange(lo, hi float64) optionSpec {
	return optionSpec{kind: optInt, min: lo, max: hi}
}

func oneOf(kind optionKind, vals ...float64) optionSpec {
	return optionSpec{kind: kind, allowed: vals}
}

// meshOptions lists the Mesh.* directives the checker understands. Size
// options exist under both their legacy CharacteristicLength* and current
// MeshSize* names.
var meshOptions = map[string]optionSpec{
	"Algorithm":              oneOf(optInt, 1, 2, 3, 5, 6, 7, 8, 9, 11),
	"Algorithm3D":            oneOf(optInt, 1, 3, 4, 7, 9, 10),
	"RecombineAll":           boolean,
	"RecombinationAlgorithm": intRange(0, 3),
	"SubdivisionAlgorithm":   intRange(0, 2),
	"ElementOrder":           intRange(1, 10),
	"SecondOrderIncomplete":  boolean,
	"SecondOrderLinear":      boolean,
	"SaveGroupsOfNodes":      anyInt,
	"SaveAll":                boolean,
	"SaveElementTagType":     intRange(1, 3),
	"Format":                 nonNegInt,
	"MshFileVersion":         oneOf(optFloat, 1, 2, 2.2, 4, 4.1),
	"Smoothing":              nonNegInt,
	"Optimize":               boolean,
	"HighOrderOptimize":      intRange(0, 4),
	"ScalingFactor":          positive,
}

func init() {
	for _, prefix := range []string{"CharacteristicLength", "MeshSize"} {
		meshOptions[prefix+"Min"] = nonNegFloat
		meshOptions[prefix+"Max"] = nonNegFloat
		meshOptions[prefix+"Factor"] = positive
		meshOptions[prefix+"FromPoints"] = boolean
		meshOptions[prefix+"ExtendFromBoundary"] = intRange(0, 2)
		meshOptions[prefix+"FromCurvature"] = nonNegInt
	}
}

// KnownMeshOptions lists the recognised option names in order.
func KnownMeshOptions() []string {
	names := make([]string, 0, len(meshOptions))
	for n := range meshOptions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CheckMeshOption validates a single directive. The error wraps ErrConfig.
func CheckMeshOption(name string, value float64) error {
	spec, ok := meshOptions[name]
	if !ok {
		return newError(ErrConfig, "Mesh."+name, "unrecognized option")
	}
	if err := spec.check(value); err != nil {
		return newError(ErrConfig, "Mesh."+name, "%v", err)
	}
	return nil
}

// checkMeshOptions returns range errors plus unknown-option problems, the
// latter separately so callers can treat them as warnings.
func (m *Model) checkMeshOptions() (errs, unknown []error) {
	for _, o := range m.MeshOptions() {
		if _, ok := meshOptions[o.Name]; !ok {
			unknown = append(unknown, CheckMeshOption(o.Name, o.Value))
			continue
		}
		if err := CheckMeshOption(o.Name, o.Value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, prefix := range []string{"CharacteristicLength", "MeshSize"} {
		lo, okLo := m.meshOptions[prefix+"Min"]
		hi, okHi := m.meshOptions[prefix+"Max"]
		if okLo && okHi && hi > 0 && lo > hi {
			errs = append(errs, newError(ErrConfig, "Mesh."+prefix+"Min",
				"%g exceeds Mesh.%sMax = %g", lo, prefix, hi))
		}
	}
	return
}

// IsMeshSizeOption reports whether an option controls element size.
func IsMeshSizeOption(name string) bool {
	return strings.HasPrefix(name, "CharacteristicLength") || strings.HasPrefix(name, "MeshSize")
}
