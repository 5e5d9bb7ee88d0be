package dsp

// Params is a value-typed snapshot of the reverb's control surface,
// delivered before every Process call (spec.md §3). Every field is
// clamped to its admissible range at block-entry; out-of-range values are
// never rejected, only silently clamped.
type Params struct {
	Mix   float32 // [0,1]
	Size  float32 // [0,1]
	Decay float32 // seconds, [0.1, 64.0]
	Delay float32 // seconds, [0, 0.3]
	Width float32 // [-1,1]

	ChorusFreqHz   float32 // [0.003, 8.0]
	ChorusAmount   float32 // [0,1]

	PreLowCutHz  float32 // [20, 20000]
	PreHighCutHz float32 // [20, 20000]

	LowShelfCutHz   float32 // [20, 20000]
	LowShelfGainDB  float32 // [-6, 0]
	HighShelfCutHz  float32 // [20, 20000]
	HighShelfGainDB float32 // [-6, 0]
}

// Clamping bounds for Params fields.
const (
	MinCutoffHz = 20.0
	MaxCutoffHz = 20_000.0

	MinShelfGainDB = -6.0
	MaxShelfGainDB = 0.0

	MinDelaySeconds = 0.0
	MaxDelaySeconds = 0.3

	MinDecaySeconds = 0.1
	MaxDecaySeconds = 64.0

	MinChorusFreqHz = 0.003
	MaxChorusFreqHz = 8.0
)

// DefaultParams mirrors original_source's ReverbParams::default().
func DefaultParams() Params {
	return Params{
		Mix:   0.25,
		Size:  0.5,
		Decay: 1.0,
		Delay: 0.004,
		Width: -0.05,

		ChorusFreqHz: 0.25,
		ChorusAmount: 0.046,

		PreLowCutHz:  MinCutoffHz,
		PreHighCutHz: 4_700.0,

		LowShelfCutHz:   MinCutoffHz,
		LowShelfGainDB:  MaxShelfGainDB,
		HighShelfCutHz:  1_480.0,
		HighShelfGainDB: -1.0,
	}
}

// Clamped returns a copy of p with every field clamped to its admissible
// range.
func (p Params) Clamped() Params {
	return Params{
		Mix:   clamp32(p.Mix, 0, 1),
		Size:  clamp32(p.Size, 0, 1),
		Decay: clamp32(p.Decay, MinDecaySeconds, MaxDecaySeconds),
		Delay: clamp32(p.Delay, MinDelaySeconds, MaxDelaySeconds),
		Width: clamp32(p.Width, -1, 1),

		ChorusFreqHz: clamp32(p.ChorusFreqHz, MinChorusFreqHz, MaxChorusFreqHz),
		ChorusAmount: clamp32(p.ChorusAmount, 0, 1),

		PreLowCutHz:  clamp32(p.PreLowCutHz, MinCutoffHz, MaxCutoffHz),
		PreHighCutHz: clamp32(p.PreHighCutHz, MinCutoffHz, MaxCutoffHz),

		LowShelfCutHz:   clamp32(p.LowShelfCutHz, MinCutoffHz, MaxCutoffHz),
		LowShelfGainDB:  clamp32(p.LowShelfGainDB, MinShelfGainDB, MaxShelfGainDB),
		HighShelfCutHz:  clamp32(p.HighShelfCutHz, MinCutoffHz, MaxCutoffHz),
		HighShelfGainDB: clamp32(p.HighShelfGainDB, MinShelfGainDB, MaxShelfGainDB),
	}
}
