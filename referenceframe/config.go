package referenceframe

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Ruckus-Robotics/rfl/spatialmath"
)

// TranslationConfig is the JSON encoding of an r3.Vector.
type TranslationConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// OrientationConfig is the JSON encoding of a rotation, expressed as an
// axis-angle. Omitted, it decodes as the identity rotation.
type OrientationConfig struct {
	RX    float64 `json:"rx"`
	RY    float64 `json:"ry"`
	RZ    float64 `json:"rz"`
	Theta float64 `json:"theta"`
}

// FrameDef is one entry of a declarative frame-tree document: a named
// frame, its static local transform, and the name of its parent (empty
// for the tree's single root).
type FrameDef struct {
	ID          string             `json:"id"`
	Parent      string             `json:"parent"`
	Translation TranslationConfig  `json:"translation"`
	Orientation *OrientationConfig `json:"orientation,omitempty"`
	BodyCentered bool              `json:"body_centered,omitempty"`
}

// Config is a whole declarative frame-tree document: an ordered list of
// frame definitions. Order within the list does not matter; parents may
// be listed after their children.
type Config struct {
	Frames []FrameDef `json:"frames"`
}

// LoadConfig decodes a Config from r.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding frame config")
	}
	return &cfg, nil
}

// transformFromDef converts a FrameDef's translation/orientation fields
// into a RigidTransform, defaulting to the identity rotation when
// Orientation is omitted.
func transformFromDef(def FrameDef) spatialmath.RigidTransform {
	if def.Orientation == nil {
		return spatialmath.NewTransformFromAxisAngleAndTranslation(0, 0, 0, 0, toR3(def.Translation))
	}
	return spatialmath.NewTransformFromAxisAngleAndTranslation(
		def.Orientation.RX, def.Orientation.RY, def.Orientation.RZ, def.Orientation.Theta,
		toR3(def.Translation),
	)
}

// BuildTree constructs a FrameNode tree from cfg. Exactly one FrameDef
// must have an empty Parent; it becomes the tree's root. Every other
// FrameDef's Parent must name an ID defined elsewhere in cfg. Frames may
// be listed in any order; BuildTree resolves dependency order internally.
//
// Returns the root FrameNode and a lookup by ID. On any configuration
// error (no root, more than one root, a dangling parent reference, or a
// duplicate ID), all such errors are collected and returned together via
// multierr rather than failing on the first one found.
func BuildTree(cfg *Config) (*FrameNode, map[string]*FrameNode, error) {
	byID := make(map[string]FrameDef, len(cfg.Frames))
	var errs error
	var rootID string
	rootCount := 0

	for _, def := range cfg.Frames {
		if _, dup := byID[def.ID]; dup {
			errs = multierr.Append(errs, errors.Errorf("duplicate frame id %q", def.ID))
			continue
		}
		byID[def.ID] = def
		if def.Parent == "" {
			rootID = def.ID
			rootCount++
		}
	}
	if rootCount == 0 {
		errs = multierr.Append(errs, errors.New("frame config has no root (no frame with empty parent)"))
	}
	if rootCount > 1 {
		errs = multierr.Append(errs, errors.Errorf("frame config has %d roots, want exactly 1", rootCount))
	}
	for _, def := range cfg.Frames {
		if def.Parent != "" {
			if _, ok := byID[def.Parent]; !ok {
				errs = multierr.Append(errs, errors.Errorf("frame %q references unknown parent %q", def.ID, def.Parent))
			}
		}
	}
	if errs != nil {
		return nil, nil, errs
	}

	nodes := make(map[string]*FrameNode, len(byID))
	root := CreateRoot(rootID)
	nodes[rootID] = root

	remaining := make([]FrameDef, 0, len(byID))
	for id, def := range byID {
		if id != rootID {
			remaining = append(remaining, def)
		}
	}
	// Deterministic ordering keeps BuildTree's error messages and any
	// partial-progress diagnostics reproducible across runs.
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].ID < remaining[j].ID })

	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0:0]
		for _, def := range remaining {
			parent, ok := nodes[def.Parent]
			if !ok {
				next = append(next, def)
				continue
			}
			opts := []FrameNodeOption{WithInitialTransform(transformFromDef(def))}
			if def.BodyCentered {
				opts = append(opts, WithBodyCentered())
			}
			child, err := CreateChild(def.ID, parent, opts...)
			if err != nil {
				return nil, nil, err
			}
			nodes[def.ID] = child
			progressed = true
		}
		if !progressed {
			return nil, nil, errors.New("frame config has a parent cycle")
		}
		remaining = next
	}

	return root, nodes, nil
}

func toR3(tc TranslationConfig) r3.Vector {
	return r3.Vector{X: tc.X, Y: tc.Y, Z: tc.Z}
}
