// Package curve holds the response-shaping math for the control pipeline.
// Everything in here is pure and stateless; numeric hazards are handled by
// clamping, never by returning errors.
package curve

import "math"

const (
	// Logit domain clamp. The transform diverges at exactly 0 and 1, so
	// inputs are pinned just inside the open unit interval first.
	logitDomainMin = 0.0001
	logitDomainMax = 0.9999

	// Nominal span of Logit over the clamped domain used when rescaling
	// the curved value back into the axis range. Kept at the tuned value
	// rather than the exact ln(0.9999/0.0001) ≈ 9.21 endpoint.
	logitSpanMin = -6.0
	logitSpanMax = 6.0
)

// Logit returns the log-odds transform ln(x/(1-x)) of x, after clamping x
// into (logitDomainMin, logitDomainMax). It never evaluates outside the open
// unit interval; for the clamped domain the output is within about ±9.21.
func Logit(x float64) float64 {
	x = ClampF(x, logitDomainMin, logitDomainMax)
	return math.Log(x / (1 - x))
}

// Steering shapes a symmetric axis value in [-limit, limit] with an
// exponential curve: normalize to [-1,1], apply sign(x)*|x|^exponent,
// denormalize. Zero and sign are preserved exactly and the result is odd
// symmetric. Exponents above 1 soften the response around center; values
// at or below 1 degrade toward linear.
func Steering(raw, limit int, exponent float64) int {
	if limit <= 0 || raw == 0 {
		// Pow(0, e) is 1 for e == 0 and +Inf for e < 0; center must stay
		// center no matter what exponent arrives.
		return 0
	}
	n := ClampF(float64(raw)/float64(limit), -1, 1)
	shaped := math.Copysign(math.Pow(math.Abs(n), exponent), n)
	return Clamp(int(math.Round(shaped*float64(limit))), -limit, limit)
}

// ThrottleBrake shapes a one-sided axis value in [0, limit] with a logit
// curve blended against the raw input:
//
//	out = blend*curved + (1-blend)*raw
//
// A blend of 0 reproduces raw exactly, 1 is the pure curve, and values
// outside [0,1] extrapolate deliberately (under-shaping for low grip,
// over-shaping for high grip). The result is clamped into [0, limit].
func ThrottleBrake(raw, limit int, blend float64) int {
	if limit <= 0 {
		return 0
	}
	if blend == 0 {
		return Clamp(raw, 0, limit)
	}
	n := ClampF(float64(raw)/float64(limit), 0, 1)
	curved := MapRange(Logit(n), logitSpanMin, logitSpanMax, 0, float64(limit))
	out := blend*curved + (1-blend)*float64(raw)
	return Clamp(int(math.Round(out)), 0, limit)
}

// MapRange linearly remaps v from [fromMin, fromMax] to [toMin, toMax].
// The result is not clamped; callers that need bounds clamp afterwards.
func MapRange(v, fromMin, fromMax, toMin, toMax float64) float64 {
	return (v-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}

// Clamp constrains v to [min, max].
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampF constrains v to [min, max].
func ClampF(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
