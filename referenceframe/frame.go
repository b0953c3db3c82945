// Package referenceframe implements a tree of named reference frames and
// the cached lookup of the rigid transform between any two frames that
// share a root. Useful for, e.g., a camera mounted on a gripper mounted on
// an arm: something seen by the camera can be expressed in the arm's
// frame, or the world's, cheaply and without re-walking the tree on every
// query.
package referenceframe

import (
	"github.com/Ruckus-Robotics/rfl/spatialmath"
)

// UpdateHook recomputes a FrameNode's localToParent transform from
// external state (e.g. a joint encoder reading) and writes the result
// into out. The default hook is a no-op, leaving localToParent
// unchanged.
type UpdateHook func(out *spatialmath.RigidTransform)

// FrameNode is a node in a reference-frame tree. It holds its pose
// relative to its parent, a cached pose relative to its tree's root
// valid only for the root's current generation, and a fixed chain of
// ancestors computed once at construction.
type FrameNode struct {
	name   string
	parent *FrameNode

	localToParent spatialmath.RigidTransform

	cachedToRoot        spatialmath.RigidTransform
	cachedToRootInverse spatialmath.RigidTransform
	cacheGeneration     int64

	// rootChain runs from the tree's root (index 0) to this node
	// (last index), inclusive. Fixed at construction, never mutated.
	rootChain []*FrameNode

	registry *FrameRegistry

	isWorld        bool
	isBodyCentered bool
	updateHook     UpdateHook
}

// FrameNodeOption configures optional state of a FrameNode at
// construction; see WithInitialTransform, WithUpdateHook, and
// WithBodyCentered.
type FrameNodeOption func(*FrameNode)

// WithInitialTransform sets the child's initial localToParent. Without
// this option, a newly created child starts at the identity transform.
func WithInitialTransform(t spatialmath.RigidTransform) FrameNodeOption {
	return func(n *FrameNode) { n.localToParent = t }
}

// WithUpdateHook installs the hook Update() invokes to recompute
// localToParent from external state.
func WithUpdateHook(hook UpdateHook) FrameNodeOption {
	return func(n *FrameNode) { n.updateHook = hook }
}

// WithBodyCentered marks the frame as body-centered. This is a semantic
// label only; it has no effect on the transform algebra.
func WithBodyCentered() FrameNodeOption {
	return func(n *FrameNode) { n.isBodyCentered = true }
}

// CreateRoot allocates a new root FrameNode with a fresh FrameRegistry.
// Its localToParent is the identity, since a root has no parent to be
// expressed relative to.
func CreateRoot(name string) *FrameNode {
	n := &FrameNode{
		name:            name,
		localToParent:   spatialmath.Identity(),
		cacheGeneration: neverComputed,
	}
	reg := newFrameRegistry()
	reg.root = n
	n.registry = reg
	n.rootChain = []*FrameNode{n}
	return n
}

// CreateChild allocates a new FrameNode as a child of parent. parent must
// be non-nil; the child is registered in parent's tree (same
// FrameRegistry) and its rootChain is parent's rootChain with the child
// appended.
func CreateChild(name string, parent *FrameNode, opts ...FrameNodeOption) (*FrameNode, error) {
	if parent == nil {
		return nil, NewParentFrameMissingError()
	}
	n := &FrameNode{
		name:            name,
		parent:          parent,
		localToParent:   spatialmath.Identity(),
		cacheGeneration: neverComputed,
		registry:        parent.registry,
	}
	n.rootChain = make([]*FrameNode, len(parent.rootChain)+1)
	copy(n.rootChain, parent.rootChain)
	n.rootChain[len(parent.rootChain)] = n

	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Name returns the frame's display name. Names are not used for identity:
// two distinct FrameNodes may share a name.
func (n *FrameNode) Name() string {
	return n.name
}

// ParentFrame returns the node's parent, or nil if n is a root.
func (n *FrameNode) ParentFrame() *FrameNode {
	return n.parent
}

// RootFrame returns the root of n's tree. For a root, this is n itself.
func (n *FrameNode) RootFrame() *FrameNode {
	return n.rootChain[0]
}

// IsWorld reports whether n is the process-wide world root.
func (n *FrameNode) IsWorld() bool {
	return n.isWorld
}

// IsBodyCentered reports the body-centered semantic label.
func (n *FrameNode) IsBodyCentered() bool {
	return n.isBodyCentered
}

// Registry returns the FrameRegistry that owns n's tree.
func (n *FrameNode) Registry() *FrameRegistry {
	return n.registry
}

// TransformToParent returns the current local transform to n's parent
// (identity, for a root).
func (n *FrameNode) TransformToParent() spatialmath.RigidTransform {
	return n.localToParent
}

// SetTransformToParent replaces n's local transform and bumps n's
// registry generation, invalidating every cached transformToRoot in the
// tree.
func (n *FrameNode) SetTransformToParent(t spatialmath.RigidTransform) {
	n.localToParent = t
	n.registry.bump()
}

// Update invokes n's update hook (a no-op if none was installed at
// construction) to recompute localToParent from whatever external state
// the hook closes over, then bumps the registry generation. The bump
// happens even when the hook is a no-op: detecting a true no-op and
// skipping the bump is also correct, but bumping unconditionally is the
// cheaper rule to reason about and is what this implementation does.
func (n *FrameNode) Update() {
	if n.updateHook != nil {
		var out spatialmath.RigidTransform
		n.updateHook(&out)
		n.localToParent = out
	}
	n.registry.bump()
}

// TransformToRoot returns the transform from n's frame to its tree's
// root. If n's cache is fresh (cacheGeneration equals the registry's
// current generation) the cached value is returned directly. Otherwise
// the whole rootChain is walked once, left to right, composing each
// node's localToParent into a running product; every node along the way
// has its cache (and inverse cache) refreshed, not just n, since the
// walk passes through all of them regardless.
func (n *FrameNode) TransformToRoot() spatialmath.RigidTransform {
	if n.cacheGeneration == n.registry.CurrentGeneration() {
		return n.cachedToRoot
	}

	gen := n.registry.CurrentGeneration()
	acc := spatialmath.Identity()
	for _, node := range n.rootChain {
		acc = spatialmath.Compose(acc, node.localToParent)
		node.cachedToRoot = acc
		node.cachedToRootInverse = acc.Invert()
		node.cacheGeneration = gen
	}
	return n.cachedToRoot
}

// TransformTo returns the transform from n's frame to other's frame.
// Fails with *DifferentRootsError if n and other do not share a root;
// no transform is computed or returned in that case.
func (n *FrameNode) TransformTo(other *FrameNode) (spatialmath.RigidTransform, error) {
	if err := n.VerifyFramesHaveSameRoot(other); err != nil {
		return spatialmath.RigidTransform{}, err
	}
	selfToRoot := n.TransformToRoot()
	other.TransformToRoot()
	return spatialmath.Compose(other.cachedToRootInverse, selfToRoot), nil
}

// VerifyFramesHaveSameRoot returns a *DifferentRootsError if n and other
// belong to different trees, nil otherwise.
func (n *FrameNode) VerifyFramesHaveSameRoot(other *FrameNode) error {
	if n.RootFrame() != other.RootFrame() {
		return &DifferentRootsError{From: n.name, To: other.name}
	}
	return nil
}

// CheckReferenceFramesMatch returns a *FrameMismatchError unless n and
// other are the same FrameNode (pointer identity, not name equality).
func (n *FrameNode) CheckReferenceFramesMatch(other *FrameNode) error {
	if n != other {
		return &FrameMismatchError{Expected: n.name, Actual: other.name}
	}
	return nil
}
