package client

import "math"

// RTT smoothing gains.
const (
	rttAlpha = 1.0 / 8
	rttBeta  = 1.0 / 4
)

// RTTEstimator smooths round-trip samples the way TCP does: the first
// sample seeds the mean and half of it the variance, later samples move
// them by alpha and beta.
type RTTEstimator struct {
	smoothed float64
	variance float64
	last     float64
	min      float64
	samples  uint64
}

// Update adds one sample in milliseconds. Negative and non-finite samples
// are ignored.
func (r *RTTEstimator) Update(sampleMs float64) {
	if !(sampleMs >= 0) || math.IsInf(sampleMs, 0) {
		return
	}
	r.last = sampleMs
	if r.samples == 0 {
		r.smoothed = sampleMs
		r.variance = sampleMs / 2
		r.min = sampleMs
	} else {
		r.variance = (1-rttBeta)*r.variance + rttBeta*math.Abs(r.smoothed-sampleMs)
		r.smoothed = (1-rttAlpha)*r.smoothed + rttAlpha*sampleMs
		r.min = math.Min(r.min, sampleMs)
	}
	r.samples++
}

// Smoothed returns the smoothed RTT in milliseconds, 0 before any sample.
func (r *RTTEstimator) Smoothed() float64 { return r.smoothed }

// Variance returns the RTT variance estimate in milliseconds.
func (r *RTTEstimator) Variance() float64 { return r.variance }

// Last returns the most recent sample.
func (r *RTTEstimator) Last() float64 { return r.last }

// Min returns the smallest sample seen.
func (r *RTTEstimator) Min() float64 { return r.min }

// Samples returns the number of samples accepted.
func (r *RTTEstimator) Samples() uint64 { return r.samples }
