package referenceframe

import (
	"github.com/golang/geo/r3"
)

// FramedPoint pairs a point with the frame it is expressed in. Binary
// operations between two FramedPoints require their frame handles to be
// pointer-equal; use ChangeFrame to re-express one into the other's frame
// first.
type FramedPoint struct {
	Name  string
	frame *FrameNode
	value r3.Vector
}

// NewFramedPoint returns a FramedPoint with value v expressed in frame.
func NewFramedPoint(name string, frame *FrameNode, v r3.Vector) FramedPoint {
	return FramedPoint{Name: name, frame: frame, value: v}
}

// Frame returns the point's current frame handle.
func (p FramedPoint) Frame() *FrameNode {
	return p.frame
}

// Value returns the point's raw coordinates in its current frame.
func (p FramedPoint) Value() r3.Vector {
	return p.value
}

// ChangeFrame re-expresses p in target, replacing both its stored frame
// and its value in place. The value undergoes the full affine transform
// from p's old frame to target, since points (unlike vectors) are
// position-dependent. Fails with *DifferentRootsError, leaving p
// unmodified, if p's frame and target do not share a root.
func (p *FramedPoint) ChangeFrame(target *FrameNode) error {
	t, err := p.frame.TransformTo(target)
	if err != nil {
		return err
	}
	p.value = t.TransformPoint(p.value)
	p.frame = target
	return nil
}

// Add returns p + other's value expressed in p's frame. Fails with
// *FrameMismatchError unless other is expressed in the same frame as p.
func (p FramedPoint) Add(other FramedPoint) (FramedPoint, error) {
	if err := p.frame.CheckReferenceFramesMatch(other.frame); err != nil {
		return FramedPoint{}, err
	}
	return FramedPoint{Name: p.Name, frame: p.frame, value: p.value.Add(other.value)}, nil
}

// Sub returns p - other's value expressed in p's frame. Fails with
// *FrameMismatchError unless other is expressed in the same frame as p.
func (p FramedPoint) Sub(other FramedPoint) (FramedPoint, error) {
	if err := p.frame.CheckReferenceFramesMatch(other.frame); err != nil {
		return FramedPoint{}, err
	}
	return FramedPoint{Name: p.Name, frame: p.frame, value: p.value.Sub(other.value)}, nil
}

// FramedVector pairs a direction vector with the frame it is expressed in.
// Unlike FramedPoint, ChangeFrame applies only the rotation component of
// the frame transform: a direction has no position to translate.
type FramedVector struct {
	Name  string
	frame *FrameNode
	value r3.Vector
}

// NewFramedVector returns a FramedVector with value v expressed in frame.
func NewFramedVector(name string, frame *FrameNode, v r3.Vector) FramedVector {
	return FramedVector{Name: name, frame: frame, value: v}
}

// Frame returns the vector's current frame handle.
func (v FramedVector) Frame() *FrameNode {
	return v.frame
}

// Value returns the vector's raw components in its current frame.
func (v FramedVector) Value() r3.Vector {
	return v.value
}

// ChangeFrame re-expresses v in target, replacing both its stored frame
// and its value in place, rotating but never translating the components.
// Fails with *DifferentRootsError, leaving v unmodified, if v's frame and
// target do not share a root.
func (v *FramedVector) ChangeFrame(target *FrameNode) error {
	t, err := v.frame.TransformTo(target)
	if err != nil {
		return err
	}
	v.value = t.TransformVector(v.value)
	v.frame = target
	return nil
}

// Add returns v + other's value expressed in v's frame. Fails with
// *FrameMismatchError unless other is expressed in the same frame as v.
func (v FramedVector) Add(other FramedVector) (FramedVector, error) {
	if err := v.frame.CheckReferenceFramesMatch(other.frame); err != nil {
		return FramedVector{}, err
	}
	return FramedVector{Name: v.Name, frame: v.frame, value: v.value.Add(other.value)}, nil
}

// Sub returns v - other's value expressed in v's frame. Fails with
// *FrameMismatchError unless other is expressed in the same frame as v.
func (v FramedVector) Sub(other FramedVector) (FramedVector, error) {
	if err := v.frame.CheckReferenceFramesMatch(other.frame); err != nil {
		return FramedVector{}, err
	}
	return FramedVector{Name: v.Name, frame: v.frame, value: v.value.Sub(other.value)}, nil
}

// Dot returns the dot product of v and other, both expressed in v's
// frame. Fails with *FrameMismatchError unless other is expressed in the
// same frame as v.
func (v FramedVector) Dot(other FramedVector) (float64, error) {
	if err := v.frame.CheckReferenceFramesMatch(other.frame); err != nil {
		return 0, err
	}
	return v.value.Dot(other.value), nil
}

// Cross returns the cross product of v and other, both expressed in v's
// frame, as a new FramedVector in that same frame. Fails with
// *FrameMismatchError unless other is expressed in the same frame as v.
func (v FramedVector) Cross(other FramedVector) (FramedVector, error) {
	if err := v.frame.CheckReferenceFramesMatch(other.frame); err != nil {
		return FramedVector{}, err
	}
	return FramedVector{Name: v.Name, frame: v.frame, value: v.value.Cross(other.value)}, nil
}
