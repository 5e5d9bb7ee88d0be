package dsp

import "testing"

func TestStereoMemorySizeRoundsUpToPowerOfTwo(t *testing.T) {
	m := NewStereoMemory(44100)
	if m.size&(m.size-1) != 0 {
		t.Errorf("size %d is not a power of two", m.size)
	}
	if m.size < 44100 {
		t.Errorf("size %d is smaller than requested 44100", m.size)
	}
}

func TestStereoMemoryMirroring(t *testing.T) {
	m := NewStereoMemory(16)
	m.Push(1, -1)

	// Every pushed sample must be visible at both offset and offset+size,
	// so any 4-wide read straddling the wrap point still sees four
	// contiguous, valid samples.
	if m.left[m.offset] != m.left[m.offset+m.size] {
		t.Errorf("left channel not mirrored: %v != %v", m.left[m.offset], m.left[m.offset+m.size])
	}
	if m.right[m.offset] != m.right[m.offset+m.size] {
		t.Errorf("right channel not mirrored: %v != %v", m.right[m.offset], m.right[m.offset+m.size])
	}
}

func TestStereoMemoryClearZeroesWithoutReallocating(t *testing.T) {
	m := NewStereoMemory(16)
	for i := 0; i < 20; i++ {
		m.Push(float32(i), -float32(i))
	}

	leftBefore := m.left
	rightBefore := m.right
	m.Clear()

	if &leftBefore[0] != &m.left[0] || &rightBefore[0] != &m.right[0] {
		t.Fatalf("Clear reallocated the backing buffers")
	}
	for i, v := range m.left {
		if v != 0 {
			t.Fatalf("left[%d] = %v after Clear, want 0", i, v)
		}
	}
	for i, v := range m.right {
		if v != 0 {
			t.Fatalf("right[%d] = %v after Clear, want 0", i, v)
		}
	}
}

func TestStereoMemoryGetInterpolatedRecentPast(t *testing.T) {
	m := NewStereoMemory(64)
	for i := 0; i < 10; i++ {
		m.Push(float32(i), float32(-i))
	}

	// Reading a whole number of samples in the past should land close to
	// the exact pushed value, modulo the Catmull-Rom kernel's ringing on a
	// discontinuous ramp.
	l, r := m.GetInterpolated(0)
	if l > 11 || l < 7 {
		t.Errorf("GetInterpolated(0) left = %v, want close to the most recent push", l)
	}
	if r < -11 || r > -7 {
		t.Errorf("GetInterpolated(0) right = %v, want close to the most recent push", r)
	}
}
