package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// See https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation.
// An orientation is expressed as a unit axis (rx, ry, rz) and a rotation
// theta, in radians, about that axis.

// R4AA is an axis-angle with the axis kept separate from the angle: three
// components on the unit sphere plus a scalar theta.
type R4AA struct {
	Theta float64
	RX    float64
	RY    float64
	RZ    float64
}

// R3AA packs axis and angle into a single vector whose direction is the
// axis and whose length is theta.
type R3AA struct {
	RX float64
	RY float64
	RZ float64
}

// smallAxisMagnitude is the threshold below which an axis-angle's axis is
// treated as degenerate and the identity rotation is substituted.
const smallAxisMagnitude = 1e-5

// NewR4AA returns the zero-rotation axis-angle (theta=0, axis=+X), matching
// the convention that an axis must still be well-defined even at zero angle.
func NewR4AA() R4AA {
	return R4AA{Theta: 0, RX: 1, RY: 0, RZ: 0}
}

// Normalize scales RX, RY, RZ onto the unit sphere in place. If the axis
// magnitude is (numerically) zero this is a no-op, since there is no
// meaningful axis to normalize to.
func (r4 *R4AA) Normalize() {
	mag := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if mag == 0 {
		return
	}
	r4.RX /= mag
	r4.RY /= mag
	r4.RZ /= mag
}

// ToR3 collapses an R4AA down to an R3AA by scaling the unit axis by theta.
func (r4 R4AA) ToR3() R3AA {
	return R3AA{r4.RX * r4.Theta, r4.RY * r4.Theta, r4.RZ * r4.Theta}
}

// ToR4 expands an R3AA to an R4AA, recovering theta as the vector's norm.
// The zero vector maps to the zero rotation about +X.
func (r3 R3AA) ToR4() R4AA {
	theta := math.Sqrt(r3.RX*r3.RX + r3.RY*r3.RY + r3.RZ*r3.RZ)
	if theta == 0 {
		return NewR4AA()
	}
	return R4AA{theta, r3.RX / theta, r3.RY / theta, r3.RZ / theta}
}

// MatrixFromAxisAngle implements the Rodrigues rotation formula. If the
// supplied axis has magnitude below smallAxisMagnitude, the identity
// rotation is returned rather than dividing by a near-zero norm.
func MatrixFromAxisAngle(ax, ay, az, theta float64) *RotationMatrix {
	mag := math.Sqrt(ax*ax + ay*ay + az*az)
	if mag < smallAxisMagnitude {
		return identityRotationMatrix()
	}
	invMag := 1.0 / mag
	ax *= invMag
	ay *= invMag
	az *= invMag

	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)
	t := 1.0 - cosTheta

	xy := ax * ay
	xz := ax * az
	yz := ay * az

	r, _ := NewRotationMatrix([]float64{
		t*ax*ax + cosTheta, t*xy - sinTheta*az, t*xz + sinTheta*ay,
		t*xy + sinTheta*az, t*ay*ay + cosTheta, t*yz - sinTheta*ax,
		t*xz - sinTheta*ay, t*yz + sinTheta*ax, t*az*az + cosTheta,
	})
	return r
}

// antipodalAxisEpsilon is the off-diagonal-asymmetry threshold used by
// AxisAngleFromMatrix to distinguish near-identity, general, and antipodal
// rotations.
const antipodalAxisEpsilon = 1e-12

// AxisAngleFromMatrix recovers an axis-angle from a rotation matrix using
// the general formula axis=(R21-R12, R02-R20, R10-R01),
// angle=atan2(|axis|/2, (trR-1)/2), falling back to the near-identity and
// antipodal special cases documented in the package-level design notes.
func AxisAngleFromMatrix(r *RotationMatrix) R4AA {
	return AxisAngleFromMatrixTol(r, antipodalAxisEpsilon)
}

// AxisAngleFromMatrixTol is AxisAngleFromMatrix with an explicit epsilon
// for the near-identity / antipodal branch selection.
func AxisAngleFromMatrixTol(r *RotationMatrix, eps float64) R4AA {
	r00, r01, r02 := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	r10, r11, r12 := r.At(1, 0), r.At(1, 1), r.At(1, 2)
	r20, r21, r22 := r.At(2, 0), r.At(2, 1), r.At(2, 2)

	axisX := r21 - r12
	axisY := r02 - r20
	axisZ := r10 - r01
	mag := math.Sqrt(axisX*axisX + axisY*axisY + axisZ*axisZ)
	trace := r00 + r11 + r22

	if mag <= eps {
		// Either near-identity (off-diagonals all ~0, trace~3) or a
		// 180-degree rotation (antipodal quaternion sign).
		if trace > 1.0 {
			return R4AA{0, 1, 0, 0}
		}
		// Antipodal branch: recover the axis from whichever diagonal
		// dominates, using the sign pattern of the symmetric
		// off-diagonal sums to disambiguate the component signs.
		if r00 >= r11 && r00 >= r22 {
			x := math.Sqrt(math.Max(0, (r00-r11-r22+1)/4))
			y := (r01 + r10) / (4 * x)
			z := (r02 + r20) / (4 * x)
			return R4AA{math.Pi, x, y, z}
		} else if r11 >= r22 {
			y := math.Sqrt(math.Max(0, (r11-r00-r22+1)/4))
			x := (r01 + r10) / (4 * y)
			z := (r12 + r21) / (4 * y)
			return R4AA{math.Pi, x, y, z}
		}
		z := math.Sqrt(math.Max(0, (r22-r00-r11+1)/4))
		x := (r02 + r20) / (4 * z)
		y := (r12 + r21) / (4 * z)
		return R4AA{math.Pi, x, y, z}
	}

	angle := math.Atan2(mag/2, (trace-1)/2)
	invMag := 1.0 / mag
	return R4AA{angle, axisX * invMag, axisY * invMag, axisZ * invMag}
}

// ToQuat converts an axis-angle to a unit quaternion. The axis is
// normalized as a side effect.
func (r4 *R4AA) ToQuat() quat.Number {
	r4.Normalize()
	sinHalf := math.Sin(r4.Theta / 2)
	cosHalf := math.Cos(r4.Theta / 2)
	return quat.Number{
		Real: cosHalf,
		Imag: r4.RX * sinHalf,
		Jmag: r4.RY * sinHalf,
		Kmag: r4.RZ * sinHalf,
	}
}
