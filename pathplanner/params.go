package pathplanner

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/pathplanner/utils"
)

// Params holds every numeric knob of the planner. A Params value is validated once when a
// Planner is constructed and is never changed by a run.
type Params struct {
	PathAlpha       float64 `json:"path_alpha" jsonschema:"description=fidelity weight in center-path smoothing"`
	PathBeta        float64 `json:"path_beta" jsonschema:"description=curvature-reduction weight in center-path smoothing"`
	SpeedAlpha      float64 `json:"speed_alpha" jsonschema:"description=fidelity weight in speed-profile smoothing"`
	SpeedBeta       float64 `json:"speed_beta" jsonschema:"description=curvature-reduction weight in speed-profile smoothing"`
	RobotWidth      float64 `json:"robot_width" jsonschema:"description=track width between the wheel contact lines"`
	TimeStep        float64 `json:"time_step" jsonschema:"description=integration step in seconds"`
	MaxSpeed        float64 `json:"max_speed" jsonschema:"description=upper bound on any wheel speed"`
	MaxAcceleration float64 `json:"max_acceleration" jsonschema:"description=upper bound on acceleration"`
	DistStep        float64 `json:"dist_step" jsonschema:"description=resampling arc-length step"`
	SpeedStepMult   int     `json:"speed_step_mult" jsonschema:"description=stride at which curvature speed caps are evaluated,minimum=1"`
	FinalAccTime    float64 `json:"final_acc_time" jsonschema:"description=soft start and stop duration in seconds,minimum=0"`
	SmoothPass      int     `json:"smooth_pass" jsonschema:"description=relaxation passes for path and speed smoothing,minimum=0"`
}

// DefaultParams returns the parameters used when nothing is overridden.
func DefaultParams() Params {
	return Params{
		PathAlpha:       0.1,
		PathBeta:        0.3,
		SpeedAlpha:      0.1,
		SpeedBeta:       0.3,
		RobotWidth:      0.2,
		TimeStep:        0.01,
		MaxSpeed:        1,
		MaxAcceleration: 0.5,
		DistStep:        0.01,
		SpeedStepMult:   10,
		FinalAccTime:    0.5,
		SmoothPass:      100,
	}
}

// Validate ensures all parameters are usable. Every violation is reported, not just the first.
// Smoothing weights outside [0, 1] are allowed here; see WeightWarnings.
func (p Params) Validate(path string) error {
	var errs error
	for _, w := range p.weightFields() {
		if !utils.IsFinite(w.value) {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
				errors.Errorf("%s must be a finite number, got %v", w.name, w.value)))
		}
	}

	positive := []namedValue{
		{"robot_width", p.RobotWidth},
		{"time_step", p.TimeStep},
		{"max_speed", p.MaxSpeed},
		{"max_acceleration", p.MaxAcceleration},
		{"dist_step", p.DistStep},
	}
	for _, f := range positive {
		switch {
		case f.value == 0:
			errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(path, f.name))
		case !(f.value > 0) || math.IsInf(f.value, 1):
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
				errors.Errorf("%s must be a finite positive number, got %v", f.name, f.value)))
		}
	}

	if !(p.FinalAccTime >= 0) || math.IsInf(p.FinalAccTime, 1) {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("final_acc_time must be a finite non-negative number, got %v", p.FinalAccTime)))
	}
	if p.SpeedStepMult < 1 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("speed_step_mult must be at least 1, got %d", p.SpeedStepMult)))
	}
	if p.SmoothPass < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("smooth_pass cannot be negative, got %d", p.SmoothPass)))
	}
	return errs
}

// WeightWarnings describes smoothing weights outside [0, 1], where the relaxation may diverge.
func (p Params) WeightWarnings() []string {
	var warnings []string
	for _, w := range p.weightFields() {
		if w.value < 0 || w.value > 1 {
			warnings = append(warnings, fmt.Sprintf("%s=%v is outside [0, 1]; smoothing may diverge", w.name, w.value))
		}
	}
	return warnings
}

type namedValue struct {
	name  string
	value float64
}

func (p Params) weightFields() []namedValue {
	return []namedValue{
		{"path_alpha", p.PathAlpha},
		{"path_beta", p.PathBeta},
		{"speed_alpha", p.SpeedAlpha},
		{"speed_beta", p.SpeedBeta},
	}
}

// softStartSamples is the length, in samples, of the soft start and stop ramps. Each sample
// is held for time_step, so final_acc_time spans final_acc_time/time_step samples, over
// which the speed climbs to max_speed.
func (p Params) softStartSamples() int {
	k := utils.CeilDiv(p.FinalAccTime, p.TimeStep)
	if k < 1 {
		return 1
	}
	return k
}
