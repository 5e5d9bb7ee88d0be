package dsp

// Matrix is a 4x4 block of Vec4 rows used to batch fractional-delay
// interpolation and the cross-coupling arithmetic in the FDN across all
// four containers at once.
type Matrix struct {
	Rows [4]Vec4
}

var (
	polyMultPrev = float32(-1.0 / 6.0)
	polyMultFrom = float32(1.0 / 2.0)
	polyMultTo   = float32(-1.0 / 2.0)
	polyMultNext = float32(1.0 / 6.0)
)

// PolynomialInterpolationMatrix builds the cubic Hermite-like 4-tap kernel
// (spec.md §4.3) for fractional position tFrom in [0,1), one independent
// scalar per lane (each lane interpolates a different delay line).
func PolynomialInterpolationMatrix(tFrom Vec4) Matrix {
	one := SplatVec4(1)
	two := SplatVec4(2)

	tPrev := tFrom.Add(one)
	tTo := tFrom.Sub(one)
	tNext := tFrom.Sub(two)

	tPrevFrom := tPrev.Mul(tFrom)
	tToNext := tTo.Mul(tNext)

	return Matrix{Rows: [4]Vec4{
		tFrom.Mul(tToNext).Scale(polyMultPrev),
		tPrev.Mul(tToNext).Scale(polyMultFrom),
		tPrevFrom.Mul(tNext).Scale(polyMultTo),
		tPrevFrom.Mul(tTo).Scale(polyMultNext),
	}}
}

// CatmullInterpolationMatrix builds the Catmull-Rom 4-tap kernel (tension
// 0.5) for fractional position t in [0,1).
func CatmullInterpolationMatrix(t Vec4) Matrix {
	one := SplatVec4(1)
	three := SplatVec4(3)
	four := SplatVec4(4)
	five := SplatVec4(5)

	halfT := t.Scale(0.5)
	halfT2 := halfT.Mul(t)
	halfT3 := halfT2.Mul(t)
	halfThreeT3 := halfT3.Mul(three)

	return Matrix{Rows: [4]Vec4{
		halfT2.Scale(2).Sub(halfT3).Sub(halfT),
		MulSub(halfThreeT3, halfT2, five).Add(one),
		MulAdd(halfT, halfT2, four).Sub(halfThreeT3),
		halfT3.Sub(halfT2),
	}}
}

// Transpose performs an in-place 4x4 transpose.
func (m *Matrix) Transpose() {
	r0, r1, r2, r3 := m.Rows[0], m.Rows[1], m.Rows[2], m.Rows[3]
	m.Rows[0] = Vec4{r0.X, r1.X, r2.X, r3.X}
	m.Rows[1] = Vec4{r0.Y, r1.Y, r2.Y, r3.Y}
	m.Rows[2] = Vec4{r0.Z, r1.Z, r2.Z, r3.Z}
	m.Rows[3] = Vec4{r0.W, r1.W, r2.W, r3.W}
}

// MultiplyAndSumRows computes the row-wise dot-product reduction
// sum_i(self[i] * other[i]), returning one interpolated sample per lane.
func (m Matrix) MultiplyAndSumRows(other Matrix) Vec4 {
	row01 := MulAdd(m.Rows[0].Mul(other.Rows[0]), m.Rows[1], other.Rows[1])
	row012 := MulAdd(row01, m.Rows[2], other.Rows[2])
	return MulAdd(row012, m.Rows[3], other.Rows[3])
}

// SumRows returns the column-wise sum of the four rows.
func (m Matrix) SumRows() Vec4 {
	return m.Rows[0].Add(m.Rows[1]).Add(m.Rows[2]).Add(m.Rows[3])
}
