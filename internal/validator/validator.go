// Package validator checks AI-authored camera command sequences before they
// are turned into a path.
package validator

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/camsynth/internal/constraints"
	"github.com/Faultbox/camsynth/internal/logger"
	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

// Validator applies structural, spatial and motion-limit rules in that order.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	log *zap.Logger
}

// New creates a validator. A nil logger disables logging.
func New(log *zap.Logger) *Validator {
	return &Validator{log: logger.OrNop(log).Named("validator")}
}

// Validate checks cmds against the object's bounding box and, when given,
// the speed and angle limits in limits. The first failing rule wins:
//
//  1. every position and target is finite and every duration finite and >= 0
//  2. no camera position lies inside box (inclusive bounds)
//  3. consecutive moves respect limits.MaxSpeed and limits.MaxAngleChange
//
// A nil box skips rule 2 with a warning. A nil limits value, or zero limits,
// skips rule 3.
func (v *Validator) Validate(cmds []motion.CameraCommand, box *math.AABB, limits *constraints.CameraConstraints) motion.ValidationResult {
	res := motion.Valid()

	if len(cmds) == 0 {
		res.Warnings = append(res.Warnings, "no commands to validate")
	}

	if err := motion.CheckCommands(cmds); err != nil {
		idx := -1
		var se *motion.StructuralError
		if errors.As(err, &se) {
			idx = se.Index
		}
		v.log.Info("structural validation failed", zap.Error(err))
		return motion.Invalid(&motion.ValidationError{Code: motion.CodeInvalidStructure, Index: idx, Message: err.Error()})
	}

	if box == nil {
		v.log.Warn("no bounding box supplied, skipping containment check")
		res.Warnings = append(res.Warnings, "bounding box unavailable: containment check skipped")
	} else {
		if err := checkContainment(cmds, *box); err != nil {
			v.log.Info("path enters object bounds", zap.Int("index", err.Index))
			return motion.Invalid(err)
		}
		res.Warnings = append(res.Warnings, crossingWarnings(cmds, *box)...)
	}

	if limits != nil {
		if err := checkLimits(cmds, *limits); err != nil {
			v.log.Info("path exceeds motion limits", zap.String("code", string(err.Code)), zap.Int("index", err.Index))
			return motion.Invalid(err)
		}
	}

	return res
}

func checkContainment(cmds []motion.CameraCommand, box math.AABB) *motion.ValidationError {
	for i, c := range cmds {
		if box.Contains(c.Position) {
			return &motion.ValidationError{
				Code:    motion.CodeBoundingBox,
				Index:   i,
				Message: fmt.Sprintf("camera position %v is inside the object bounds", c.Position),
			}
		}
	}
	return nil
}

// crossingWarnings flags straight moves whose chord passes through the box.
// The smoothed curve may still clear it, so these never fail validation.
func crossingWarnings(cmds []motion.CameraCommand, box math.AABB) []string {
	var warnings []string
	for i := 1; i < len(cmds); i++ {
		if math.SegmentIntersectsAABB(cmds[i-1].Position, cmds[i].Position, box) {
			warnings = append(warnings, fmt.Sprintf("move %d->%d crosses the object bounds", i-1, i))
		}
	}
	return warnings
}

func checkLimits(cmds []motion.CameraCommand, c constraints.CameraConstraints) *motion.ValidationError {
	for i := 1; i < len(cmds); i++ {
		prev, cur := cmds[i-1], cmds[i]

		if c.MaxSpeed > 0 {
			dist := prev.Position.Distance(cur.Position)
			if dist > 0 && (cur.Duration == 0 || dist/cur.Duration > c.MaxSpeed) {
				speed := "instantaneous"
				if cur.Duration > 0 {
					speed = fmt.Sprintf("%.3f", dist/cur.Duration)
				}
				return &motion.ValidationError{
					Code:    motion.CodeSpeedLimit,
					Index:   i,
					Message: fmt.Sprintf("speed %s exceeds max %.3f", speed, c.MaxSpeed),
				}
			}
		}

		if c.MaxAngleChange > 0 {
			dirPrev := prev.Target.Sub(prev.Position)
			dirCur := cur.Target.Sub(cur.Position)
			if dirPrev.LengthSq() == 0 || dirCur.LengthSq() == 0 {
				continue
			}
			if angle := dirPrev.AngleTo(dirCur); angle > c.MaxAngleChange {
				return &motion.ValidationError{
					Code:    motion.CodeAngleLimit,
					Index:   i,
					Message: fmt.Sprintf("view turns %.3f rad, max %.3f", angle, c.MaxAngleChange),
				}
			}
		}
	}
	return nil
}
