// Package motion defines the data model shared by the camera path synthesis
// components: commands, validation results, processed paths and errors.
package motion

import (
	"strings"

	"github.com/Faultbox/camsynth/pkg/math"
)

// CameraCommand is one authored waypoint: where the camera is, what it looks
// at, and how long the move into this waypoint takes.
type CameraCommand struct {
	Position math.Vec3 `yaml:"position" json:"position"`
	Target   math.Vec3 `yaml:"target" json:"target"`
	Duration float64   `yaml:"duration" json:"duration"` // seconds
	Easing   Easing    `yaml:"easing,omitempty" json:"easing,omitempty"`
}

// TotalDuration sums the durations of cmds.
func TotalDuration(cmds []CameraCommand) float64 {
	total := 0.0
	for _, c := range cmds {
		total += c.Duration
	}
	return total
}

// ValidationResult reports whether a check passed. Errors make the result
// invalid; warnings are informational only.
type ValidationResult struct {
	IsValid  bool     `yaml:"is_valid" json:"isValid"`
	Errors   []string `yaml:"errors,omitempty" json:"errors,omitempty"`
	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`

	// Code and Index identify the first failing rule. Index is -1 when the
	// failure is not tied to a single command.
	Code  Code `yaml:"code,omitempty" json:"code,omitempty"`
	Index int  `yaml:"index" json:"index"`
}

// Valid returns a passing result.
func Valid() ValidationResult {
	return ValidationResult{IsValid: true, Index: -1}
}

// Invalid returns a failing result built from a ValidationError.
func Invalid(err *ValidationError) ValidationResult {
	return ValidationResult{
		IsValid: false,
		Errors:  []string{err.Error()},
		Code:    err.Code,
		Index:   err.Index,
	}
}

// Err returns the failure as a *ValidationError, or nil for a valid result.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	err := &ValidationError{Code: r.Code, Index: r.Index}
	if len(r.Errors) > 0 {
		// Errors[0] is the full message built by Invalid
		err.Message = strings.TrimPrefix(r.Errors[0], err.Error())
	}
	return err
}
