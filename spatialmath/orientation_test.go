package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// A 45 degree rotation about the X axis, expressed in every representation.
var (
	th45  = math.Pi / 4.
	q45x  = quat.Number{Real: math.Cos(th45 / 2.), Imag: math.Sin(th45 / 2.)}
	aa45x = R4AA{th45, 1., 0., 0.}
	ea45x = EulerAngles{Roll: th45}
)

func matrixAlmostEqual(t *testing.T, got, want *RotationMatrix) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test.That(t, got.At(i, j), test.ShouldAlmostEqual, want.At(i, j))
		}
	}
}

func TestQuaternionMatrixRoundTrip(t *testing.T) {
	m := MatrixFromQuaternion(q45x)
	q := QuaternionFromMatrix(m)
	test.That(t, q.Real, test.ShouldAlmostEqual, q45x.Real)
	test.That(t, q.Imag, test.ShouldAlmostEqual, q45x.Imag)
	test.That(t, q.Jmag, test.ShouldAlmostEqual, q45x.Jmag)
	test.That(t, q.Kmag, test.ShouldAlmostEqual, q45x.Kmag)

	matrixAlmostEqual(t, MatrixFromQuaternion(q), m)
}

func TestAxisAngleFromMatrix(t *testing.T) {
	m := MatrixFromEulerAngles(ea45x)
	aa := AxisAngleFromMatrix(m)
	test.That(t, aa.Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, aa.RX, test.ShouldAlmostEqual, aa45x.RX)
	test.That(t, aa.RY, test.ShouldAlmostEqual, aa45x.RY)
	test.That(t, aa.RZ, test.ShouldAlmostEqual, aa45x.RZ)
}

func TestEulerAnglesFromMatrix(t *testing.T) {
	m := MatrixFromQuaternion(q45x)
	e := EulerAnglesFromMatrix(m)
	test.That(t, e.Roll, test.ShouldAlmostEqual, ea45x.Roll)
	test.That(t, e.Pitch, test.ShouldAlmostEqual, ea45x.Pitch)
	test.That(t, e.Yaw, test.ShouldAlmostEqual, ea45x.Yaw)
}

func TestAxisAngleDegenerate(t *testing.T) {
	m := MatrixFromAxisAngle(0, 0, 0, 0)
	matrixAlmostEqual(t, m, identityRotationMatrix())
}

func TestAxisAngleNearIdentityExtraction(t *testing.T) {
	aa := AxisAngleFromMatrix(identityRotationMatrix())
	test.That(t, aa.Theta, test.ShouldEqual, 0.0)
}

func TestAxisAngleFromMatrixAntipodal(t *testing.T) {
	// 180 degree rotation about Z: a case that exercises the antipodal
	// branch of AxisAngleFromMatrix (off-diagonal asymmetries vanish
	// while the trace is not near 3).
	m := MatrixFromAxisAngle(0, 0, 1, math.Pi)
	aa := AxisAngleFromMatrix(m)
	test.That(t, aa.Theta, test.ShouldAlmostEqual, math.Pi)
	test.That(t, math.Abs(aa.RZ), test.ShouldAlmostEqual, 1.0)
}

func TestGramSchmidtRestoresOrthogonality(t *testing.T) {
	drifted, err := NewRotationMatrix([]float64{
		1.001, 0.002, -0.001,
		0.0, 1.0, 0.0005,
		0.0, 0.0, 0.999,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, drifted.IsOrthogonal(1e-8), test.ShouldBeFalse)

	fixed := drifted.GramSchmidt()
	test.That(t, fixed.IsOrthogonal(1e-8), test.ShouldBeTrue)
}
