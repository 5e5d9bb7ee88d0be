package vitaverb

import "github.com/sndforge/vitaverb/internal/dsp"

// Params is the reverb's control surface, delivered before every Process
// call. See the dsp.Params field docs for ranges; out-of-range values are
// clamped rather than rejected.
type Params = dsp.Params

// DefaultParams returns a reasonable starting point for all Params fields.
func DefaultParams() Params {
	return dsp.DefaultParams()
}

// Reverb is a stereo feedback-delay-network reverb. The zero value is not
// usable; construct with NewReverb.
type Reverb struct {
	engine      *dsp.Reverb
	initialized bool
}

// NewReverb returns an uninitialized Reverb. Call Init before Process.
func NewReverb() *Reverb {
	return &Reverb{engine: dsp.NewReverb()}
}

// TryInit allocates all per-session buffers for sampleRate and resets
// state. It may be called again to change sample rate. TryInit returns
// ErrInvalidSampleRate instead of panicking when sampleRate is out of
// range.
func (r *Reverb) TryInit(sampleRate float32) error {
	if !validSampleRate(sampleRate) {
		return sampleRateError(sampleRate)
	}
	r.engine.Init(sampleRate)
	r.initialized = true
	return nil
}

// Init is TryInit, panicking on an invalid sample rate. Use this when the
// sample rate is a compile-time or config-validated constant rather than
// untrusted input.
func (r *Reverb) Init(sampleRate float32) {
	if err := r.TryInit(sampleRate); err != nil {
		panic(err)
	}
}

// Reset clears all filter, delay-line, and ring-buffer state in place,
// without reallocating. Reset is a no-op before the first successful Init.
func (r *Reverb) Reset() {
	if !r.initialized {
		return
	}
	r.engine.Reset()
}

// TailSamples returns an upper-bound estimate, in samples, of how long the
// reverb's decay remains audible for the given decay time in seconds.
// TailSamples returns 0 before the first successful Init.
func (r *Reverb) TailSamples(decaySeconds float32) uint32 {
	if !r.initialized {
		return 0
	}
	return r.engine.TailSamples(decaySeconds)
}

// TryProcess mixes the dry signal in left/right with the reverb's wet
// signal, in place, returning an error instead of panicking when a
// precondition is violated. left and right must have equal length.
func (r *Reverb) TryProcess(left, right []float32, params Params) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if len(left) != len(right) {
		return ErrMismatchedChannelLength
	}
	r.engine.Process(left, right, params)
	return nil
}

// Process is TryProcess, panicking on a precondition violation. Process
// never allocates and is safe to call from a realtime audio callback once
// Init has already completed off that thread.
func (r *Reverb) Process(left, right []float32, params Params) {
	if err := r.TryProcess(left, right, params); err != nil {
		panic(err)
	}
}
