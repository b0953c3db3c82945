package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

// randomRotation builds R as a product of random X, Y, Z axis rotations,
// the sampling procedure the round-trip properties are specified over.
func randomRotation(r *rand.Rand) *RotationMatrix {
	rx := MatrixFromAxisAngle(1, 0, 0, r.Float64()*2*math.Pi)
	ry := MatrixFromAxisAngle(0, 1, 0, r.Float64()*2*math.Pi)
	rz := MatrixFromAxisAngle(0, 0, 1, r.Float64()*2*math.Pi)
	return rx.MulMatrix(ry).MulMatrix(rz)
}

// nearGimbalLock reports whether R's pitch (as extracted by
// EulerAnglesFromMatrix) is within 1e-4 of +/- pi/2, the configuration
// where XYZ Euler extraction loses a degree of freedom.
func nearGimbalLock(r *RotationMatrix) bool {
	pitch := EulerAnglesFromMatrix(r).Pitch
	return math.Abs(math.Abs(pitch)-math.Pi/2) < 1e-4
}

func TestRoundTripQuaternion(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		m := randomRotation(r)
		q := QuaternionFromMatrix(m)
		back := MatrixFromQuaternion(q)
		matrixAlmostEqualTol(t, back, m, 1e-8)
	}
}

func TestRoundTripAxisAngle(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		m := randomRotation(r)
		aa := AxisAngleFromMatrix(m)
		back := MatrixFromAxisAngle(aa.RX, aa.RY, aa.RZ, aa.Theta)
		matrixAlmostEqualTol(t, back, m, 1e-8)
	}
}

func TestRoundTripEulerXYZ(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	checked := 0
	for checked < 200 {
		m := randomRotation(r)
		if nearGimbalLock(m) {
			continue
		}
		e := EulerAnglesFromMatrix(m)
		back := MatrixFromEulerAngles(e)
		matrixAlmostEqualTol(t, back, m, 1e-8)
		checked++
	}
}

func matrixAlmostEqualTol(t *testing.T, got, want *RotationMatrix, eps float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			diff := got.At(i, j) - want.At(i, j)
			if diff < 0 {
				diff = -diff
			}
			test.That(t, diff < eps, test.ShouldBeTrue)
		}
	}
}
