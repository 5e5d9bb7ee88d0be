package dsp

// StereoMemory is a doubled stereo ring buffer: pushing a sample mirrors it
// into both halves so that any 4-wide read straddling the wrap point still
// sees four contiguous, valid samples (spec.md §4.2).
type StereoMemory struct {
	left  []float32
	right []float32

	size    int32
	bitmask int32
	offset  int32
}

// NewStereoMemory allocates a doubled ring buffer sized to the next power
// of two >= size.
func NewStereoMemory(size uint32) *StereoMemory {
	sz := int32(nextPowerOfTwo(size))
	return &StereoMemory{
		left:    make([]float32, 2*sz),
		right:   make([]float32, 2*sz),
		size:    sz,
		bitmask: sz - 1,
	}
}

// Push advances the ring and mirrors the stereo sample into both halves of
// each channel's buffer.
func (m *StereoMemory) Push(l, r float32) {
	m.offset = (m.offset + 1) & m.bitmask

	m.left[m.offset] = l
	m.left[m.offset+m.size] = l
	m.right[m.offset] = r
	m.right[m.offset+m.size] = r
}

// Clear zeroes both channel buffers without reallocating.
func (m *StereoMemory) Clear() {
	for i := range m.left {
		m.left[i] = 0
	}
	for i := range m.right {
		m.right[i] = 0
	}
}

// GetInterpolated reads a Catmull-Rom interpolated stereo sample `past`
// samples behind the write head. The caller guarantees past is finite and
// representable as an int32 after truncation (spec.md §4.2).
//
// Returns (left, right).
func (m *StereoMemory) GetInterpolated(past float32) (float32, float32) {
	pastIndex := int32(past)
	pastTruncated := float32(pastIndex)

	t := pastTruncated - past + 1
	kernel := CatmullInterpolationMatrix(SplatVec4(t))

	index := (m.offset - pastIndex - 2) & m.bitmask

	row0 := Vec4{m.left[index], m.left[index+1], m.left[index+2], m.left[index+3]}
	row1 := Vec4{m.right[index], m.right[index+1], m.right[index+2], m.right[index+3]}

	values := Matrix{Rows: [4]Vec4{row0, row1, Vec4{}, Vec4{}}}
	values.Transpose()

	out := kernel.MultiplyAndSumRows(values)
	return out.X, out.Y
}
