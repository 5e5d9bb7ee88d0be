// Package vitaverb implements a stereo feedback-delay-network reverb.
//
// The engine is a 16-lane FDN arranged as four 4-wide containers, with
// nested allpass diffusion ahead of the feedback path, chorus-modulated
// delay-line reads for a moving, non-metallic tail, and one-pole shelf
// filters that damp the high and low ends of the decay independently of
// its overall length.
//
// # Usage
//
// Construct a Reverb, call Init once the sample rate is known, and call
// Process once per audio block with a Params value describing the current
// control surface:
//
//	r := vitaverb.NewReverb()
//	r.Init(48000)
//	r.Process(left, right, params)
//
// Process operates in place and never allocates. It re-blocks internally,
// so callers may pass buffers of any length.
//
// # Realtime safety
//
// Process and Reset do not allocate, lock, or perform I/O, and are safe to
// call from an audio callback. Init does allocate and must never be called
// from that callback.
//
// # Preconditions
//
// Process panics if called before Init, or if the left and right channel
// buffers differ in length — both are host programming errors rather than
// recoverable runtime conditions. Use TryProcess for a non-panicking
// wrapper over the same checks.
package vitaverb
