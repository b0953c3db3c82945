package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// quaternionEqualityTolerance is a 1e-10 quaternion comparison tolerance.
// QuaternionAlmostEqual does not consult it; its eps is always supplied by
// the caller.
const quaternionEqualityTolerance = 1e-10

// MatrixFromQuaternion expands a quaternion into a rotation matrix. The
// quaternion is not renormalized first; a non-unit input produces a
// non-orthogonal matrix, and that is the caller's responsibility to avoid
// (see RotationMatrix.GramSchmidt).
func MatrixFromQuaternion(q quat.Number) *RotationMatrix {
	x, y, z, w := q.Imag, q.Jmag, q.Kmag, q.Real

	xx2 := 2.0 * x * x
	yy2 := 2.0 * y * y
	zz2 := 2.0 * z * z
	xy2 := 2.0 * x * y
	wz2 := 2.0 * w * z
	xz2 := 2.0 * x * z
	wy2 := 2.0 * w * y
	yz2 := 2.0 * y * z
	wx2 := 2.0 * w * x

	r, _ := NewRotationMatrix([]float64{
		1.0 - yy2 - zz2, xy2 - wz2, xz2 + wy2,
		xy2 + wz2, 1.0 - xx2 - zz2, yz2 - wx2,
		xz2 - wy2, yz2 + wx2, 1.0 - xx2 - yy2,
	})
	return r
}

// QuaternionFromMatrix extracts a unit quaternion from a rotation matrix
// using the trace-branching algorithm: whichever of trR+1, 1+R00-R11-R22,
// 1+R11-R00-R22, 1+R22-R00-R11 is largest selects the branch, which avoids
// the cancellation a naive sqrt(trR+1) formula suffers near trR<=-1.
// The sign of w is not fixed by this algorithm; callers that need a
// canonical sign should compare against a reference quaternion themselves.
func QuaternionFromMatrix(r *RotationMatrix) quat.Number {
	r00, r01, r02 := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	r10, r11, r12 := r.At(1, 0), r.At(1, 1), r.At(1, 2)
	r20, r21, r22 := r.At(2, 0), r.At(2, 1), r.At(2, 2)

	trace := r00 + r11 + r22
	tw := trace + 1.0
	tx := 1.0 + r00 - r11 - r22
	ty := 1.0 + r11 - r00 - r22
	tz := 1.0 + r22 - r00 - r11

	var x, y, z, w float64
	switch {
	case tw >= tx && tw >= ty && tw >= tz:
		val := math.Sqrt(tw) * 2.0
		w = 0.25 * val
		x = (r21 - r12) / val
		y = (r02 - r20) / val
		z = (r10 - r01) / val
	case tx >= ty && tx >= tz:
		val := math.Sqrt(math.Max(0, tx)) * 2.0
		x = 0.25 * val
		y = (r01 + r10) / val
		z = (r02 + r20) / val
		w = (r21 - r12) / val
	case ty >= tz:
		val := math.Sqrt(math.Max(0, ty)) * 2.0
		x = (r01 + r10) / val
		y = 0.25 * val
		z = (r12 + r21) / val
		w = (r02 - r20) / val
	default:
		val := math.Sqrt(math.Max(0, tz)) * 2.0
		x = (r02 + r20) / val
		y = (r12 + r21) / val
		z = 0.25 * val
		w = (r10 - r01) / val
	}

	q := quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
	return normalizeQuat(q)
}

func normalizeQuat(q quat.Number) quat.Number {
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Number{Real: q.Real / n, Imag: q.Imag / n, Jmag: q.Jmag / n, Kmag: q.Kmag / n}
}

// QuaternionAlmostEqual reports whether q1 and q2 are within eps
// componentwise. It does not account for the double-cover sign ambiguity
// (q and -q represent the same rotation); callers that need that should
// compare against both q2 and Flip(q2).
func QuaternionAlmostEqual(q1, q2 quat.Number, eps float64) bool {
	return floatAlmostEqual(q1.Real, q2.Real, eps) &&
		floatAlmostEqual(q1.Imag, q2.Imag, eps) &&
		floatAlmostEqual(q1.Jmag, q2.Jmag, eps) &&
		floatAlmostEqual(q1.Kmag, q2.Kmag, eps)
}

// Flip returns -q, representing the same rotation via the opposite sign
// convention (the "other side" of the double cover of SO(3) by unit
// quaternions).
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

func floatAlmostEqual(a, b, eps float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}
