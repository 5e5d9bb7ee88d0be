package dsp

import "math"

// MaxBlockSize is the largest number of frames processed by a single
// internal smoothing pass; Process re-blocks internally to honor this
// (spec.md §4.5).
const MaxBlockSize = 128

// BaseSampleRate and MaxSampleRate bound the admissible sample rates
// (spec.md §1 Non-goals).
const (
	BaseSampleRate = 44_100.0
	MaxSampleRate  = 192_000.0
)

const (
	t60Amplitude  = 0.001
	allpassFeedback = 0.6
	minDelay        = 3.0

	sampleDelayMultiplier     = 0.05
	sampleIncrementMultiplier = 0.05

	maxChorusDrift = 2500.0

	networkSize       = 16
	networkContainers = networkSize / 4

	baseFeedbackBits  = 14
	extraLookupSample = 1
	baseAllpassBits   = 10

	minSizePower     = -3
	maxSizePower     = 1
	sizePowerRange   = float32(maxSizePower - minSizePower)

	feedForwardScale = 0.125
)

var networkOffset = float32(2.0 * math.Pi / networkSize)

// allpassDelays holds the per-container allpass delay constants, in
// 4-sample units (spec.md §4.4), before the pair-swap and buffer scaling
// applied at Init.
var allpassDelays = [networkContainers]Vec4i{
	{X: 1001, Y: 799, Z: 933, W: 876},
	{X: 895, Y: 807, Z: 907, W: 853},
	{X: 957, Y: 1019, Z: 711, W: 567},
	{X: 833, Y: 779, Z: 663, W: 997},
}

// feedbackDelays holds the per-container feedback delay-line lengths in
// samples at 44.1kHz (spec.md §4.4).
var feedbackDelays = [networkContainers]Vec4{
	{X: 6753.2, Y: 9278.4, Z: 7704.5, W: 11328.5},
	{X: 9701.12, Y: 5512.5, Z: 8480.45, W: 5638.65},
	{X: 3120.73, Y: 3429.5, Z: 3626.37, W: 7713.52},
	{X: 4521.54, Y: 6518.97, Z: 5265.56, W: 5630.25},
}

// chorusPhaseOffset assigns each lane within a container a distinct phase
// offset around the unit circle, spread evenly across the network.
var chorusPhaseOffset = Vec4{X: 0, Y: 1, Z: 2, W: 3}

func getSampleRateRatio(sampleRate float32) float32 {
	return sampleRate / BaseSampleRate
}

// getBufferScale doubles from 1 until it reaches or exceeds the sample
// rate ratio, matching original_source exactly (a closed-form ceil(log2)
// would differ by one at exact powers of two).
func getBufferScale(sampleRate float32) int32 {
	ratio := getSampleRateRatio(sampleRate)
	scale := int32(1)
	for float32(scale) < ratio {
		scale *= 2
	}
	return scale
}

func equalPowerFade(normal float32) float32 {
	return float32(math.Cos(float64(normal) * math.Pi / 2))
}

func equalPowerFadeInverse(normal float32) float32 {
	return float32(math.Cos(float64(normal-1) * math.Pi / 2))
}

func dbToAmplitude(db float32) float32 {
	return float32(math.Pow(10, float64(db)*0.05))
}
