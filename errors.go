// errors.go defines public error types for the vitaverb package.

package vitaverb

import (
	"errors"
	"fmt"

	"github.com/sndforge/vitaverb/internal/dsp"
)

// Public error values returned by the non-panicking Try* entry points.
var (
	// ErrNotInitialized indicates Process or TryProcess was called before
	// Init or TryInit ever succeeded.
	ErrNotInitialized = errors.New("vitaverb: reverb used before a successful Init")

	// ErrMismatchedChannelLength indicates the left and right buffers
	// passed to Process differ in length.
	ErrMismatchedChannelLength = errors.New("vitaverb: left and right channel buffers must have equal length")

	// ErrInvalidSampleRate indicates a sample rate outside
	// [dsp.BaseSampleRate, dsp.MaxSampleRate].
	ErrInvalidSampleRate = errors.New("vitaverb: sample rate out of supported range")
)

func validSampleRate(sampleRate float32) bool {
	return sampleRate >= dsp.BaseSampleRate && sampleRate <= dsp.MaxSampleRate
}

func sampleRateError(sampleRate float32) error {
	return fmt.Errorf("%w: %g Hz (supported range [%g, %g])", ErrInvalidSampleRate, sampleRate, float32(dsp.BaseSampleRate), float32(dsp.MaxSampleRate))
}
