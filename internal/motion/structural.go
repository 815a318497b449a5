package motion

import (
	"fmt"
	"math"

	gmath "github.com/Faultbox/camsynth/pkg/math"
)

// CheckVector rejects NaN and infinite components.
func CheckVector(index int, field string, v gmath.Vec3) error {
	comps := [3]struct {
		name string
		val  float64
	}{{"x", v.X}, {"y", v.Y}, {"z", v.Z}}

	for _, c := range comps {
		if math.IsNaN(c.val) || math.IsInf(c.val, 0) {
			return &StructuralError{
				Index:  index,
				Field:  field + "." + c.name,
				Reason: fmt.Sprintf("must be finite, got %v", c.val),
			}
		}
	}
	return nil
}

// CheckCommand validates the fields of a single command.
func CheckCommand(index int, c CameraCommand) error {
	if err := CheckVector(index, "position", c.Position); err != nil {
		return err
	}
	if err := CheckVector(index, "target", c.Target); err != nil {
		return err
	}
	if math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return &StructuralError{Index: index, Field: "duration", Reason: fmt.Sprintf("must be finite, got %v", c.Duration)}
	}
	if c.Duration < 0 {
		return &StructuralError{Index: index, Field: "duration", Reason: fmt.Sprintf("must be non-negative, got %v", c.Duration)}
	}
	if !c.Easing.Known() {
		return &StructuralError{Index: index, Field: "easing", Reason: fmt.Sprintf("unknown curve %q", c.Easing)}
	}
	return nil
}

// CheckCommands validates every command and returns the first failure.
func CheckCommands(cmds []CameraCommand) error {
	for i, c := range cmds {
		if err := CheckCommand(i, c); err != nil {
			return err
		}
	}
	return nil
}
