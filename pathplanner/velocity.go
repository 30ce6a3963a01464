package pathplanner

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/pathplanner/utils"
)

// VelocityProfile holds the center, left wheel and right wheel speeds, index-aligned with the
// resampled center path.
type VelocityProfile struct {
	Center []float64
	Left   []float64
	Right  []float64
}

// Len returns the number of samples in the profile.
func (vp VelocityProfile) Len() int {
	return len(vp.Center)
}

// Profile computes the speed at every sample of center. The center speed is limited by
// curvature and by both wheels, smoothed, ramped to zero at both ends over final_acc_time,
// and finally made reachable under max_acceleration in both directions of travel. Wheel
// speeds follow from the differential kinematics of each sample's curvature and are never
// negative: where the turning radius is at most half the track width the robot comes to a stop.
func Profile[T any](center Path[T], curvature []float64, params Params) (VelocityProfile, error) {
	if len(center) == 0 {
		return VelocityProfile{}, ErrEmptyPath
	}
	if len(curvature) != len(center) {
		return VelocityProfile{}, newLengthMismatchError("curvature", len(center), len(curvature))
	}
	if err := params.Validate("params"); err != nil {
		return VelocityProfile{}, err
	}

	caps := speedCaps(curvature, params)
	v := smoothSpeeds(caps, params)
	applySoftStartStop(v, params)
	enforceAcceleration(v, params.MaxAcceleration, params.DistStep)
	left, right := wheelSpeeds(v, curvature, params)
	return VelocityProfile{Center: v, Left: left, Right: right}, nil
}

// curvatureSpeedLimit bounds the lateral acceleration v²|κ| by max_acceleration.
func curvatureSpeedLimit(kappa float64, params Params) float64 {
	k := math.Abs(kappa)
	if k == 0 {
		return params.MaxSpeed
	}
	return math.Min(params.MaxSpeed, math.Sqrt(params.MaxAcceleration/k))
}

// wheelSpeedLimit is the highest center speed at which the outer wheel stays under max_speed
// and the inner wheel does not reverse.
func wheelSpeedLimit(kappa float64, params Params) float64 {
	offset := math.Abs(kappa) * params.RobotWidth / 2
	if offset >= 1 {
		return 0
	}
	return params.MaxSpeed / (1 + offset)
}

// speedCaps evaluates the curvature limit at every speed_step_mult-th sample and at the last
// one, and linearly interpolates the samples in between. The per-sample wheel limit is
// applied on top.
func speedCaps(curvature []float64, params Params) []float64 {
	n := len(curvature)
	stride := params.SpeedStepMult
	if stride < 1 {
		stride = 1
	}

	anchors := make([]int, 0, n/stride+2)
	for i := 0; i < n; i += stride {
		anchors = append(anchors, i)
	}
	if anchors[len(anchors)-1] != n-1 {
		anchors = append(anchors, n-1)
	}

	caps := make([]float64, n)
	for _, i := range anchors {
		caps[i] = curvatureSpeedLimit(curvature[i], params)
	}
	for a := 1; a < len(anchors); a++ {
		from, to := anchors[a-1], anchors[a]
		for i := from + 1; i < to; i++ {
			caps[i] = utils.Lerp(caps[from], caps[to], float64(i-from)/float64(to-from))
		}
	}

	for i, kappa := range curvature {
		caps[i] = math.Min(caps[i], wheelSpeedLimit(kappa, params))
	}
	return caps
}

// smoothSpeeds relaxes the caps with the speed weights. Smoothing may lower a sample but
// never lifts it above its own cap.
func smoothSpeeds(caps []float64, params Params) []float64 {
	seq := mat.NewDense(len(caps), 1, floats.ScaleTo(make([]float64, len(caps)), 1, caps))
	relax(seq, neverPinned, weights{alpha: params.SpeedAlpha, beta: params.SpeedBeta}, params.SmoothPass)

	v := make([]float64, len(caps))
	for i := range v {
		v[i] = utils.Clamp(seq.At(i, 0), 0, caps[i])
	}
	return v
}

// applySoftStartStop caps the first and last softStartSamples samples by a linear ramp from
// zero, which also forces the first and last speed to zero.
func applySoftStartStop(v []float64, params Params) {
	n := len(v)
	k := float64(params.softStartSamples())
	for i := range v {
		fromEdge := float64(min(i, n-1-i))
		v[i] = math.Min(v[i], params.MaxSpeed*fromEdge/k)
	}
}

// enforceAcceleration limits the speed change between neighboring samples, dist apart, to
// what maxAcc allows: a forward pass for acceleration and a backward pass for deceleration.
func enforceAcceleration(v []float64, maxAcc, dist float64) {
	step := 2 * maxAcc * dist
	for i := 1; i < len(v); i++ {
		v[i] = math.Min(v[i], math.Sqrt(v[i-1]*v[i-1]+step))
	}
	for i := len(v) - 2; i >= 0; i-- {
		v[i] = math.Min(v[i], math.Sqrt(v[i+1]*v[i+1]+step))
	}
}

// wheelSpeeds derives v_left = v - ωw/2 and v_right = v + ωw/2 from ω = κv. If the faster
// wheel would exceed max_speed the sample is scaled down as a whole so the turn geometry is
// preserved.
func wheelSpeeds(v, curvature []float64, params Params) ([]float64, []float64) {
	half := params.RobotWidth / 2
	left := make([]float64, len(v))
	right := make([]float64, len(v))
	for i := range v {
		offset := curvature[i] * half
		if math.Abs(offset) >= 1 {
			v[i] = 0
		}
		left[i] = v[i] * (1 - offset)
		right[i] = v[i] * (1 + offset)
		if fastest := math.Max(left[i], right[i]); fastest > params.MaxSpeed {
			scale := params.MaxSpeed / fastest
			v[i] *= scale
			left[i] *= scale
			right[i] *= scale
		}
	}
	return left, right
}
