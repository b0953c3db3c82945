// Package spatialmath implements the rigid-body transform algebra used to
// move points and vectors between reference frames: rotation matrices,
// unit quaternions, axis-angle, and XYZ Euler representations, plus the
// RigidTransform type that composes a rotation with a translation.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// orthogonalityTolerance is the 1e-8 orthogonality drift tolerance fixed at
// the package boundary. IsOrthogonal does not consult it; its tolerance is
// always supplied by the caller.
const orthogonalityTolerance = 1e-8

// RotationMatrix is a 3x3 proper rotation (R^T R = I, det R = +1, up to
// orthogonalityTolerance drift). It is backed by a gonum dense matrix so
// that callers needing raw linear-algebra access (determinants, column
// views) don't have to round-trip through a flat array.
type RotationMatrix struct {
	m *mat.Dense
}

// NewRotationMatrix builds a RotationMatrix from nine row-major elements:
// data[0:3] is the first row, data[3:6] the second, data[6:9] the third.
// The input is not checked for orthogonality; use IsOrthogonal or
// GramSchmidt if that matters to the caller.
func NewRotationMatrix(data []float64) (*RotationMatrix, error) {
	if len(data) != 9 {
		return nil, errors.Errorf("rotation matrix requires 9 elements, got %d", len(data))
	}
	cp := make([]float64, 9)
	copy(cp, data)
	return &RotationMatrix{m: mat.NewDense(3, 3, cp)}, nil
}

// identityRotationMatrix returns a fresh 3x3 identity.
func identityRotationMatrix() *RotationMatrix {
	r, _ := NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	return r
}

// At returns the element at row i, column j (0-indexed).
func (r *RotationMatrix) At(i, j int) float64 {
	return r.m.At(i, j)
}

// RawRowMajor returns the nine elements in row-major order. The returned
// slice is a copy; mutating it does not affect the RotationMatrix.
func (r *RotationMatrix) RawRowMajor() []float64 {
	out := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i*3+j] = r.m.At(i, j)
		}
	}
	return out
}

// Clone returns a deep copy.
func (r *RotationMatrix) Clone() *RotationMatrix {
	cp := mat.NewDense(3, 3, nil)
	cp.Copy(r.m)
	return &RotationMatrix{m: cp}
}

// Determinant returns det(R). Present for test/verification purposes only;
// it is not consulted by any other operation in this package.
func (r *RotationMatrix) Determinant() float64 {
	return mat.Det(r.m)
}

// Transpose returns R^T as a new RotationMatrix.
func (r *RotationMatrix) Transpose() *RotationMatrix {
	out := mat.NewDense(3, 3, nil)
	out.CloneFrom(r.m.T())
	return &RotationMatrix{m: out}
}

// MulMatrix returns r * other.
func (r *RotationMatrix) MulMatrix(other *RotationMatrix) *RotationMatrix {
	out := mat.NewDense(3, 3, nil)
	out.Mul(r.m, other.m)
	return &RotationMatrix{m: out}
}

// IsOrthogonal reports whether R^T R is within tol of the identity. As a
// cheap first check, each column's Euclidean norm must already be within
// tol of 1 -- a column that has drifted off the unit sphere can never
// satisfy the full R^T R == I test.
func (r *RotationMatrix) IsOrthogonal(tol float64) bool {
	for col := 0; col < 3; col++ {
		v := columnVec(r.m, col)
		if diff := floats.Norm(v[:], 2) - 1.0; diff < -tol || diff > tol {
			return false
		}
	}

	var prod mat.Dense
	prod.Mul(r.m.T(), r.m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if diff := prod.At(i, j) - want; diff < -tol || diff > tol {
				return false
			}
		}
	}
	return true
}

// GramSchmidt orthonormalizes the columns of r in order X, Y, Z and
// returns the result as a new RotationMatrix; r is left unmodified.
func (r *RotationMatrix) GramSchmidt() *RotationMatrix {
	x := columnVec(r.m, 0)
	y := columnVec(r.m, 1)
	z := columnVec(r.m, 2)

	x = normalizeVec3(x)
	y = subVec3(y, scaleVec3(x, dotVec3(y, x)))
	y = normalizeVec3(y)
	z = crossVec3(x, y)
	z = normalizeVec3(z)

	out := mat.NewDense(3, 3, nil)
	setColumn(out, 0, x)
	setColumn(out, 1, y)
	setColumn(out, 2, z)
	return &RotationMatrix{m: out}
}

func columnVec(m *mat.Dense, col int) [3]float64 {
	return [3]float64{m.At(0, col), m.At(1, col), m.At(2, col)}
}

func setColumn(m *mat.Dense, col int, v [3]float64) {
	m.Set(0, col, v[0])
	m.Set(1, col, v[1])
	m.Set(2, col, v[2])
}

func dotVec3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func crossVec3(a, b [3]float64) [3]float64 {
	c := mgl64.Vec3{a[0], a[1], a[2]}.Cross(mgl64.Vec3{b[0], b[1], b[2]})
	return [3]float64{c[0], c[1], c[2]}
}

func scaleVec3(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

func subVec3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func normVec3(a [3]float64) float64 {
	return dotVec3(a, a)
}

func normalizeVec3(a [3]float64) [3]float64 {
	n := normVec3(a)
	if n == 0 {
		return a
	}
	inv := 1.0 / math.Sqrt(n)
	return scaleVec3(a, inv)
}
