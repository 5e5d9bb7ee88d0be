package dsp

import "math"

// OnePoleFilter is a 4-wide stateful one-pole lowpass whose state is
// advanced by two equal half-steps per Tick to approximate a
// topology-preserving integrator (spec.md §4.1).
// A single instance serves either 4 independent delay-line lanes within
// one FDN container, or (for the pre-filters) the [L,R,L,R] voice layout.
type OnePoleFilter struct {
	currentState Vec4
	filterState  Vec4
}

// Reset clears all filter state.
func (f *OnePoleFilter) Reset() {
	f.currentState = Vec4{}
	f.filterState = Vec4{}
}

// Tick advances the filter by one sample and returns the new output.
// coefficient is broadcast across all four lanes — every coefficient this
// engine derives (pre-filter and shelf cutoffs) is a single scalar value
// shared by all lanes of the filter it feeds.
func (f *OnePoleFilter) Tick(audioIn Vec4, coefficient float32) Vec4 {
	delta := audioIn.Sub(f.filterState).Scale(coefficient)

	f.filterState = f.filterState.Add(delta)
	f.currentState = f.filterState
	f.filterState = f.filterState.Add(delta)

	return f.currentState
}

// OnePoleCoeff derives the tan-warped coefficient for cutoff frequency
// cutoffHz at the given sample rate. This is the only transcendental call
// on the coefficient path (spec.md §4.1), so callers must only invoke it
// when the cutoff has actually changed.
func OnePoleCoeff(cutoffHz, sampleRateRecip float32) float32 {
	deltaPhase := float64(cutoffHz) * (math.Pi * float64(sampleRateRecip))
	a := deltaPhase / (deltaPhase + 1)
	return roundTripFloat32(math.Tan(a))
}
