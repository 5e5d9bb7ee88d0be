package dsp

import "testing"

func TestTransposeIsSelfInverse(t *testing.T) {
	m := Matrix{Rows: [4]Vec4{
		{X: 1, Y: 2, Z: 3, W: 4},
		{X: 5, Y: 6, Z: 7, W: 8},
		{X: 9, Y: 10, Z: 11, W: 12},
		{X: 13, Y: 14, Z: 15, W: 16},
	}}
	original := m

	m.Transpose()
	if m == original {
		t.Fatalf("Transpose did not change a non-symmetric matrix")
	}
	m.Transpose()
	if m != original {
		t.Errorf("Transpose twice = %+v, want %+v", m, original)
	}
}

func TestPolynomialInterpolationMatrixPassesThroughAnchors(t *testing.T) {
	// At t=0 the kernel should reproduce the "from" sample exactly: the
	// tFrom row's weight is 1 and all others are 0.
	kernel := PolynomialInterpolationMatrix(SplatVec4(0))

	values := Matrix{Rows: [4]Vec4{
		SplatVec4(10), // prev
		SplatVec4(20), // from
		SplatVec4(30), // to
		SplatVec4(40), // next
	}}

	got := kernel.MultiplyAndSumRows(values)
	want := SplatVec4(20)
	if !approxEqualVec4(got, want, 1e-4) {
		t.Errorf("interpolation at t=0 = %+v, want %+v", got, want)
	}
}

func TestCatmullInterpolationMatrixPassesThroughAnchors(t *testing.T) {
	kernel := CatmullInterpolationMatrix(SplatVec4(0))

	values := Matrix{Rows: [4]Vec4{
		SplatVec4(10),
		SplatVec4(20),
		SplatVec4(30),
		SplatVec4(40),
	}}

	got := kernel.MultiplyAndSumRows(values)
	want := SplatVec4(20)
	if !approxEqualVec4(got, want, 1e-4) {
		t.Errorf("interpolation at t=0 = %+v, want %+v", got, want)
	}
}

func approxEqualVec4(a, b Vec4, eps float32) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps) &&
		approxEqual(a.Z, b.Z, eps) && approxEqual(a.W, b.W, eps)
}

func approxEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
