// Package dsp implements the reverb feedback-delay-network engine: the
// 16-lane FDN, its nested allpass diffusion, chorus-modulated delay reads,
// shelf damping, and the interpolation/smoothing machinery underneath it.
package dsp

// Vec4 holds four float32 lanes, one per delay line inside an FDN
// container. The network is conceived as 4-wide throughout (see spec
// design note on SIMD width); Vec4 is the portable stand-in for a real
// f32x4 register. No operation here allocates; the arithmetic operations
// are straight-line lane-wise code, and only the min/clamp/floor helpers
// branch per lane.
type Vec4 struct {
	X, Y, Z, W float32
}

// SplatVec4 returns a Vec4 with all four lanes set to v.
func SplatVec4(v float32) Vec4 {
	return Vec4{v, v, v, v}
}

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

func (a Vec4) Scale(s float32) Vec4 {
	return Vec4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

func (a Vec4) AddScalar(s float32) Vec4 {
	return Vec4{a.X + s, a.Y + s, a.Z + s, a.W + s}
}

func (a Vec4) Neg() Vec4 {
	return Vec4{-a.X, -a.Y, -a.Z, -a.W}
}

// MulAdd computes a + b*c lane-wise. On hardware lacking a fused
// multiply-add this is exactly what gets emitted anyway; see spec.md §9.
func MulAdd(a, b, c Vec4) Vec4 {
	return Vec4{
		a.X + b.X*c.X,
		a.Y + b.Y*c.Y,
		a.Z + b.Z*c.Z,
		a.W + b.W*c.W,
	}
}

// MulSub computes a - b*c lane-wise.
func MulSub(a, b, c Vec4) Vec4 {
	return Vec4{
		a.X - b.X*c.X,
		a.Y - b.Y*c.Y,
		a.Z - b.Z*c.Z,
		a.W - b.W*c.W,
	}
}

// Lerp linearly interpolates from `from` to `to` by t, lane-wise.
func Lerp(from, to, t Vec4) Vec4 {
	return MulAdd(from, to.Sub(from), t)
}

// SumLanes horizontally adds all four lanes.
func (a Vec4) SumLanes() float32 {
	return a.X + a.Y + a.Z + a.W
}

// SwapVoices swizzles [2,3,0,1] — used to fold the 16-lane network down to
// a stereo pair when pushing into the output ring (spec.md §4.4 step 14).
func SwapVoices(a Vec4) Vec4 {
	return Vec4{a.Z, a.W, a.X, a.Y}
}

// SwapStereo swizzles [1,0,3,2]. Its integer-lane counterpart,
// SwapStereo4i, is the one applied to each container's allpass delay
// vector at Init (spec.md §4.4).
func SwapStereo(a Vec4) Vec4 {
	return Vec4{a.Y, a.X, a.W, a.Z}
}

func (a Vec4) Min(b Vec4) Vec4 {
	return Vec4{min32(a.X, b.X), min32(a.Y, b.Y), min32(a.Z, b.Z), min32(a.W, b.W)}
}

func (a Vec4) Clamp(lo, hi Vec4) Vec4 {
	return Vec4{
		clamp32(a.X, lo.X, hi.X),
		clamp32(a.Y, lo.Y, hi.Y),
		clamp32(a.Z, lo.Z, hi.Z),
		clamp32(a.W, lo.W, hi.W),
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec4i holds four int32 lanes, used for ring-buffer indices and static
// delay tables.
type Vec4i struct {
	X, Y, Z, W int32
}

func SplatVec4i(v int32) Vec4i {
	return Vec4i{v, v, v, v}
}

func (a Vec4i) Add(b Vec4i) Vec4i {
	return Vec4i{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func (a Vec4i) Sub(b Vec4i) Vec4i {
	return Vec4i{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

func (a Vec4i) Mul(b Vec4i) Vec4i {
	return Vec4i{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

func (a Vec4i) MulScalar(s int32) Vec4i {
	return Vec4i{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

func (a Vec4i) AddScalar(s int32) Vec4i {
	return Vec4i{a.X + s, a.Y + s, a.Z + s, a.W + s}
}

// And applies a bitmask lane-wise (ring-buffer wraparound).
func (a Vec4i) And(mask Vec4i) Vec4i {
	return Vec4i{a.X & mask.X, a.Y & mask.Y, a.Z & mask.Z, a.W & mask.W}
}

func (a Vec4i) ToVec4() Vec4 {
	return Vec4{float32(a.X), float32(a.Y), float32(a.Z), float32(a.W)}
}

// TruncToVec4i truncates towards zero. The caller guarantees the value is
// finite and representable as an int32 after truncation (spec.md §4.2
// "Safety prerequisite").
func (a Vec4) TruncToVec4i() Vec4i {
	return Vec4i{int32(a.X), int32(a.Y), int32(a.Z), int32(a.W)}
}

// FloorUnchecked floors towards negative infinity, assuming the same
// preconditions as TruncToVec4i.
func (a Vec4) FloorUnchecked() Vec4 {
	t := a.TruncToVec4i().ToVec4()
	return Vec4{
		floorAdjust(t.X, a.X),
		floorAdjust(t.Y, a.Y),
		floorAdjust(t.Z, a.Z),
		floorAdjust(t.W, a.W),
	}
}

func floorAdjust(truncated, original float32) float32 {
	if truncated > original {
		return truncated - 1
	}
	return truncated
}

// nextPowerOfTwo returns the smallest power of two >= v (v > 0).
func nextPowerOfTwo(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	p := uint32(1)
	for p < v {
		p <<= 1
	}
	return p
}

// roundTripFloat32 rounds a float64 intermediate to float32 precision,
// mirroring the teacher's roundFloat64ToFloat32 idiom used to keep
// coefficient derivations reproducible across platforms.
func roundTripFloat32(v float64) float32 {
	return float32(v)
}
