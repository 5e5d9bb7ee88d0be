package wavio

import "testing"

func TestLimitStereoPassesQuietSamplesThrough(t *testing.T) {
	x := []float32{0.1, -0.2, 0.3, -0.79}
	want := append([]float32(nil), x...)

	limitStereo(x)

	for i := range x {
		if x[i] != want[i] {
			t.Errorf("sample %d changed: got %v, want %v", i, x[i], want[i])
		}
	}
}

func TestLimitStereoBoundsPeaksToUnity(t *testing.T) {
	x := []float32{1.8, -1.9, 5.0, -0.81, 0.2}

	limitStereo(x)

	for i, v := range x {
		if v > 1.0 || v < -1.0 {
			t.Errorf("sample %d = %v exceeds unity after limiting", i, v)
		}
	}
}

func TestLimitStereoPreservesSign(t *testing.T) {
	x := []float32{2.0, -2.0}
	limitStereo(x)

	if x[0] <= 0 {
		t.Errorf("positive sample flipped sign: %v", x[0])
	}
	if x[1] >= 0 {
		t.Errorf("negative sample flipped sign: %v", x[1])
	}
}

func TestQuantizeInt16ClampsAtBoundary(t *testing.T) {
	if got := quantizeInt16(1.5); got != 32767 {
		t.Errorf("quantizeInt16(1.5) = %d, want 32767", got)
	}
	if got := quantizeInt16(-1.5); got != -32768 {
		t.Errorf("quantizeInt16(-1.5) = %d, want -32768", got)
	}
	if got := quantizeInt16(0); got != 0 {
		t.Errorf("quantizeInt16(0) = %d, want 0", got)
	}
}
