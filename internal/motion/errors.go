package motion

import (
	"errors"
	"fmt"
)

// Code classifies validation failures.
type Code string

const (
	CodeInvalidStructure   Code = "INVALID_STRUCTURE"
	CodeBoundingBox        Code = "PATH_VIOLATION_BOUNDING_BOX"
	CodeSpeedLimit         Code = "SPEED_LIMIT_EXCEEDED"
	CodeAngleLimit         Code = "ANGLE_LIMIT_EXCEEDED"
	CodeHeightOutOfRange   Code = "HEIGHT_OUT_OF_RANGE"
	CodeDistanceOutOfRange Code = "DISTANCE_OUT_OF_RANGE"
)

var (
	// ErrNoCommands is returned when a path is requested for zero commands.
	ErrNoCommands = errors.New("no camera commands")

	// ErrNotInitialized is returned by the solver before an object is set.
	ErrNotInitialized = errors.New("solver not initialized")
)

// StructuralError reports a malformed vector or duration.
type StructuralError struct {
	Index  int    // command index, -1 if not tied to a command
	Field  string // e.g. "position", "target.y", "duration"
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("command %d: invalid %s: %s", e.Index, e.Field, e.Reason)
}

// AnalysisError reports that scene analysis could not run.
type AnalysisError struct {
	Reason string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Reason, e.Err)
	}
	return "analysis failed: " + e.Reason
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// ValidationError reports a path that breaks a spatial or motion constraint.
type ValidationError struct {
	Code    Code
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s at command %d: %s", e.Code, e.Index, e.Message)
}
