package referenceframe

import "sync"

// neverComputed is the cacheGeneration sentinel meaning "never computed",
// chosen so that it can never equal a real generation (generations start
// at 0 and only increase).
const neverComputed = int64(-1) << 62

// FrameRegistry holds the per-tree state shared by every FrameNode rooted
// at the same root: the monotonic generation counter that invalidates
// every cached transformToRoot in the tree in O(1), and a pointer back to
// the root itself.
//
// One FrameRegistry exists per root tree; a FrameNode belongs to exactly
// one tree, identified by rootChain[0]'s registry.
type FrameRegistry struct {
	root       *FrameNode
	generation int64
}

func newFrameRegistry() *FrameRegistry {
	return &FrameRegistry{generation: 0}
}

// CurrentGeneration returns the registry's current generation counter.
func (reg *FrameRegistry) CurrentGeneration() int64 {
	return reg.generation
}

// bump advances the generation counter, invalidating every FrameNode
// cache in the tree. A 64-bit counter does not wrap in practice; were it
// to wrap, the worst case is a spurious stale classification that costs
// one redundant recomputation, never a wrong value, since a cache miss
// always recomputes from rootChain rather than trusting stale data.
func (reg *FrameRegistry) bump() {
	reg.generation++
}

// Root returns the registry's root FrameNode.
func (reg *FrameRegistry) Root() *FrameNode {
	return reg.root
}

var (
	worldOnce  sync.Once
	worldFrame *FrameNode
)

// World returns the process-wide "world" root frame, creating it on first
// access. The returned pointer is stable for the lifetime of the process;
// its localToParent (identity, since it is a root) is never mutated.
func World() *FrameNode {
	worldOnce.Do(func() {
		worldFrame = CreateRoot("world")
		worldFrame.isWorld = true
	})
	return worldFrame
}
