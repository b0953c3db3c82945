package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// DefaultEqualityTolerance is the tolerance EpsilonEquals callers reach for
// absent a more specific figure.
const DefaultEqualityTolerance = 1e-10

// RigidTransform is an affine isometry x -> R*x + t, R a proper rotation
// and t a translation. Its canonical representation is the twelve scalars
// of the 3x4 block [R | t]; the implicit bottom row is [0 0 0 1].
type RigidTransform struct {
	r [3][3]float64
	t r3.Vector
}

// Identity returns the identity transform.
func Identity() RigidTransform {
	return RigidTransform{r: identityArray()}
}

func identityArray() [3][3]float64 {
	return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func rotationMatrixToArray(r *RotationMatrix) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r.At(i, j)
		}
	}
	return out
}

func arrayToRotationMatrix(a [3][3]float64) *RotationMatrix {
	r, _ := NewRotationMatrix([]float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	})
	return r
}

// NewTransformFromRotationAndTranslation builds a RigidTransform directly
// from a rotation matrix and translation. r is not renormalized.
func NewTransformFromRotationAndTranslation(r *RotationMatrix, t r3.Vector) RigidTransform {
	return RigidTransform{r: rotationMatrixToArray(r), t: t}
}

// NewTransformFromQuaternionAndTranslation builds a RigidTransform from a
// quaternion and translation. q is not renormalized.
func NewTransformFromQuaternionAndTranslation(q quat.Number, t r3.Vector) RigidTransform {
	return RigidTransform{r: rotationMatrixToArray(MatrixFromQuaternion(q)), t: t}
}

// NewTransformFromAxisAngleAndTranslation builds a RigidTransform from an
// axis-angle and translation. An axis near zero magnitude yields an
// identity rotation, per MatrixFromAxisAngle.
func NewTransformFromAxisAngleAndTranslation(ax, ay, az, theta float64, t r3.Vector) RigidTransform {
	return RigidTransform{r: rotationMatrixToArray(MatrixFromAxisAngle(ax, ay, az, theta)), t: t}
}

// NewTransformFromEulerAnglesAndZeroTranslation builds a pure-rotation
// RigidTransform (translation zero) from an XYZ Euler triple.
func NewTransformFromEulerAnglesAndZeroTranslation(e EulerAngles) RigidTransform {
	return RigidTransform{r: rotationMatrixToArray(MatrixFromEulerAngles(e))}
}

// NewTransformFromMatrix4 builds a RigidTransform from the top-left 3x3
// rotation block and top-right translation column of a row-major 4x4
// matrix; the bottom row is not checked.
func NewTransformFromMatrix4(m [16]float64) RigidTransform {
	return RigidTransform{
		r: [3][3]float64{
			{m[0], m[1], m[2]},
			{m[4], m[5], m[6]},
			{m[8], m[9], m[10]},
		},
		t: r3.Vector{X: m[3], Y: m[7], Z: m[11]},
	}
}

// Matrix4 returns the row-major 4x4 homogeneous matrix equivalent of t.
func (t RigidTransform) Matrix4() [16]float64 {
	r := t.r
	return [16]float64{
		r[0][0], r[0][1], r[0][2], t.t.X,
		r[1][0], r[1][1], r[1][2], t.t.Y,
		r[2][0], r[2][1], r[2][2], t.t.Z,
		0, 0, 0, 1,
	}
}

// RotationMatrix returns the rotation block as a RotationMatrix.
func (t RigidTransform) RotationMatrix() *RotationMatrix {
	return arrayToRotationMatrix(t.r)
}

// SetRotationMatrix replaces the rotation block in place, leaving the
// translation untouched.
func (t *RigidTransform) SetRotationMatrix(r *RotationMatrix) {
	t.r = rotationMatrixToArray(r)
}

// Translation returns the translation component.
func (t RigidTransform) Translation() r3.Vector {
	return t.t
}

// SetTranslation replaces the translation component in place, leaving the
// rotation untouched.
func (t *RigidTransform) SetTranslation(v r3.Vector) {
	t.t = v
}

// Quaternion returns the rotation as a unit quaternion (see
// QuaternionFromMatrix for the branch-selection and sign-ambiguity
// caveats).
func (t RigidTransform) Quaternion() quat.Number {
	return QuaternionFromMatrix(t.RotationMatrix())
}

// AxisAngle returns the rotation in axis-angle form.
func (t RigidTransform) AxisAngle() R4AA {
	return AxisAngleFromMatrix(t.RotationMatrix())
}

// EulerAngles returns the rotation as an XYZ Euler triple.
func (t RigidTransform) EulerAngles() EulerAngles {
	return EulerAnglesFromMatrix(t.RotationMatrix())
}

// Determinant returns det(R). For test/verification use only.
func (t RigidTransform) Determinant() float64 {
	return t.RotationMatrix().Determinant()
}

func mulMatVec(r [3][3]float64, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

func mulMatMat(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func transposeMat(a [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[j][i]
		}
	}
	return out
}

// Compose returns t1 . t2 -- applying the result to a point p is
// equivalent to t1(t2(p)).
func Compose(t1, t2 RigidTransform) RigidTransform {
	return RigidTransform{
		r: mulMatMat(t1.r, t2.r),
		t: mulMatVec(t1.r, t2.t).Add(t1.t),
	}
}

// Multiply composes other onto the right of t in place: t becomes t . other.
func (t *RigidTransform) Multiply(other RigidTransform) {
	*t = Compose(*t, other)
}

// Invert returns the transform's inverse, exploiting R being orthogonal:
// R^-1 = R^T and the new translation is -R^T . t.
func (t RigidTransform) Invert() RigidTransform {
	rt := transposeMat(t.r)
	return RigidTransform{
		r: rt,
		t: mulMatVec(rt, t.t).Mul(-1),
	}
}

// InvertRotationKeepTranslation returns a transform with R replaced by its
// transpose and the translation left unchanged. This is not a true
// geometric inverse; it exists because the source exposes it as a
// distinct, narrower operation.
func (t RigidTransform) InvertRotationKeepTranslation() RigidTransform {
	return RigidTransform{r: transposeMat(t.r), t: t.t}
}

// TransformPoint returns R*p + t.
func (t RigidTransform) TransformPoint(p r3.Vector) r3.Vector {
	return mulMatVec(t.r, p).Add(t.t)
}

// TransformPointInPlace overwrites *p with R*p + t.
func (t RigidTransform) TransformPointInPlace(p *r3.Vector) {
	*p = t.TransformPoint(*p)
}

// TransformVector returns R*v, ignoring translation.
func (t RigidTransform) TransformVector(v r3.Vector) r3.Vector {
	return mulMatVec(t.r, v)
}

// TransformVectorInPlace overwrites *v with R*v.
func (t RigidTransform) TransformVectorInPlace(v *r3.Vector) {
	*v = t.TransformVector(*v)
}

// TransformHomogeneous applies t to the homogeneous point (x, y, z, w),
// returning an error if w != 1.
func (t RigidTransform) TransformHomogeneous(x, y, z, w float64) (r3.Vector, error) {
	if w != 1 {
		return r3.Vector{}, errors.Errorf("homogeneous transform requires w=1, got %v", w)
	}
	return t.TransformPoint(r3.Vector{X: x, Y: y, Z: z}), nil
}

// ApplyTranslation post-translates t by delta expressed in t's own local
// frame: t' = t . Translate(delta), i.e. the new translation is
// t.t + R*delta and the rotation is unchanged.
func (t *RigidTransform) ApplyTranslation(delta r3.Vector) {
	t.t = t.TransformVector(delta).Add(t.t)
}

// ApplyRotationX right-multiplies t's rotation by a rotation of theta about
// the local X axis: t' = t . RotX(theta).
func (t *RigidTransform) ApplyRotationX(theta float64) {
	t.r = mulMatMat(t.r, rotationMatrixToArray(MatrixFromAxisAngle(1, 0, 0, theta)))
}

// ApplyRotationY right-multiplies t's rotation by a rotation of theta about
// the local Y axis.
func (t *RigidTransform) ApplyRotationY(theta float64) {
	t.r = mulMatMat(t.r, rotationMatrixToArray(MatrixFromAxisAngle(0, 1, 0, theta)))
}

// ApplyRotationZ right-multiplies t's rotation by a rotation of theta about
// the local Z axis.
func (t *RigidTransform) ApplyRotationZ(theta float64) {
	t.r = mulMatMat(t.r, rotationMatrixToArray(MatrixFromAxisAngle(0, 0, 1, theta)))
}

// Normalize restores R's orthogonality via Gram-Schmidt on its columns.
func (t *RigidTransform) Normalize() {
	t.r = rotationMatrixToArray(arrayToRotationMatrix(t.r).GramSchmidt())
}

// IsOrthogonal reports whether R is orthogonal within tol; intended for
// detecting drift that Normalize should then correct.
func (t RigidTransform) IsOrthogonal(tol float64) bool {
	return t.RotationMatrix().IsOrthogonal(tol)
}

// EpsilonEquals reports whether all twelve scalars of t and other are
// within eps.
func (t RigidTransform) EpsilonEquals(other RigidTransform, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !floatAlmostEqual(t.r[i][j], other.r[i][j], eps) {
				return false
			}
		}
	}
	return floatAlmostEqual(t.t.X, other.t.X, eps) &&
		floatAlmostEqual(t.t.Y, other.t.Y, eps) &&
		floatAlmostEqual(t.t.Z, other.t.Z, eps)
}

// TranslationDifference returns t2's translation minus t1's.
func TranslationDifference(t1, t2 RigidTransform) r3.Vector {
	return t2.t.Sub(t1.t)
}
