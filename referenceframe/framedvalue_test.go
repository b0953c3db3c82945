package referenceframe

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/Ruckus-Robotics/rfl/spatialmath"
)

func identityTranslated(v r3.Vector) spatialmath.RigidTransform {
	return spatialmath.NewTransformFromAxisAngleAndTranslation(0, 0, 0, 0, v)
}

func TestFramedPointChangeFrameIsAffine(t *testing.T) {
	root := CreateRoot("r")
	a, err := CreateChild("a", root, WithInitialTransform(
		identityTranslated(r3.Vector{X: 10}),
	))
	test.That(t, err, test.ShouldBeNil)

	p := NewFramedPoint("p", a, r3.Vector{X: 1})
	test.That(t, p.ChangeFrame(root), test.ShouldBeNil)
	test.That(t, p.Value(), test.ShouldResemble, r3.Vector{X: 11})
}

func TestFramedVectorChangeFrameIgnoresTranslation(t *testing.T) {
	root := CreateRoot("r")
	a, err := CreateChild("a", root, WithInitialTransform(
		identityTranslated(r3.Vector{X: 10}),
	))
	test.That(t, err, test.ShouldBeNil)

	v := NewFramedVector("v", a, r3.Vector{X: 1})
	test.That(t, v.ChangeFrame(root), test.ShouldBeNil)
	test.That(t, v.Value(), test.ShouldResemble, r3.Vector{X: 1})
}

func TestFramedValueBinaryOpRejectsMismatch(t *testing.T) {
	root := CreateRoot("r")
	a, err := CreateChild("a", root)
	test.That(t, err, test.ShouldBeNil)
	b, err := CreateChild("b", root)
	test.That(t, err, test.ShouldBeNil)

	p1 := NewFramedPoint("p1", a, r3.Vector{X: 1})
	p2 := NewFramedPoint("p2", b, r3.Vector{X: 2})

	_, err = p1.Add(p2)
	test.That(t, err, test.ShouldNotBeNil)
	_, ok := err.(*FrameMismatchError)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestFramedValueChangeFrameAcrossRootsFails(t *testing.T) {
	root1 := CreateRoot("r1")
	a, err := CreateChild("a", root1)
	test.That(t, err, test.ShouldBeNil)

	root2 := CreateRoot("r2")

	p := NewFramedPoint("p", a, r3.Vector{X: 1})
	err = p.ChangeFrame(root2)
	test.That(t, err, test.ShouldNotBeNil)
	_, ok := err.(*DifferentRootsError)
	test.That(t, ok, test.ShouldBeTrue)
	// Failed changeFrame leaves the value and frame untouched.
	test.That(t, p.Value(), test.ShouldResemble, r3.Vector{X: 1})
	test.That(t, p.Frame(), test.ShouldEqual, a)
}

func TestFramedVectorDotAndCross(t *testing.T) {
	root := CreateRoot("r")
	v1 := NewFramedVector("v1", root, r3.Vector{X: 1, Y: 0, Z: 0})
	v2 := NewFramedVector("v2", root, r3.Vector{X: 0, Y: 1, Z: 0})

	dot, err := v1.Dot(v2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dot, test.ShouldAlmostEqual, 0.0)

	cross, err := v1.Cross(v2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cross.Value(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 1})
}
