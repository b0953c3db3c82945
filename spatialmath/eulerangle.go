package spatialmath

import "math"

// EulerAngles is an XYZ Euler triple, in radians. The rotation it encodes
// is Rz * Ry * Rx applied to column vectors: intrinsic rotation about X,
// then Y, then Z, read right to left. Roll/Pitch/Yaw name the X/Y/Z
// components respectively, matching the teacher's naming even though the
// axes aren't aircraft axes here.
type EulerAngles struct {
	Roll  float64 // rotation about X
	Pitch float64 // rotation about Y
	Yaw   float64 // rotation about Z
}

// NewEulerAngles returns the zero (identity) Euler triple.
func NewEulerAngles() EulerAngles {
	return EulerAngles{}
}

// MatrixFromEulerAngles builds Rz(yaw) * Ry(pitch) * Rx(roll).
func MatrixFromEulerAngles(e EulerAngles) *RotationMatrix {
	sa, ca := math.Sin(e.Roll), math.Cos(e.Roll)
	sb, cb := math.Sin(e.Pitch), math.Cos(e.Pitch)
	sc, cc := math.Sin(e.Yaw), math.Cos(e.Yaw)

	r, _ := NewRotationMatrix([]float64{
		cb * cc, -(ca * sc) + (sa * sb * cc), (sa * sc) + (ca * sb * cc),
		cb * sc, (ca * cc) + (sa * sb * sc), -(sa * cc) + (ca * sb * sc),
		-sb, sa * cb, ca * cb,
	})
	return r
}

// EulerAnglesFromMatrix recovers the XYZ Euler triple that produced R.
// Undefined (loses a degree of freedom) when |pitch| is near pi/2; this
// gimbal-lock case is not flagged, per the source this is ported from.
func EulerAnglesFromMatrix(r *RotationMatrix) EulerAngles {
	return EulerAngles{
		Roll:  math.Atan2(r.At(2, 1), r.At(2, 2)),
		Pitch: math.Atan2(-r.At(2, 0), math.Sqrt(r.At(2, 1)*r.At(2, 1)+r.At(2, 2)*r.At(2, 2))),
		Yaw:   math.Atan2(r.At(1, 0), r.At(0, 0)),
	}
}
