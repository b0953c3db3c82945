package referenceframe

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

const sampleConfig = `
{
  "frames": [
    {"id": "arm", "parent": "", "translation": {"x": 0, "y": 0, "z": 0}},
    {"id": "gripper", "parent": "arm", "translation": {"x": 1, "y": 0, "z": 0}},
    {"id": "camera", "parent": "gripper", "translation": {"x": 0, "y": 0, "z": 0.5},
     "orientation": {"rx": 0, "ry": 1, "rz": 0, "theta": 1.5707963267948966}}
  ]
}`

func TestBuildTreeFromConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(sampleConfig))
	test.That(t, err, test.ShouldBeNil)

	root, byID, err := BuildTree(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, root.Name(), test.ShouldEqual, "arm")
	test.That(t, len(byID), test.ShouldEqual, 3)

	camera := byID["camera"]
	test.That(t, camera.ParentFrame(), test.ShouldEqual, byID["gripper"])
	test.That(t, camera.RootFrame(), test.ShouldEqual, root)
}

func TestBuildTreeRejectsDanglingParent(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`{"frames":[
		{"id":"root","parent":""},
		{"id":"child","parent":"ghost"}
	]}`))
	test.That(t, err, test.ShouldBeNil)

	_, _, err = BuildTree(cfg)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildTreeRejectsMultipleRoots(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`{"frames":[
		{"id":"r1","parent":""},
		{"id":"r2","parent":""}
	]}`))
	test.That(t, err, test.ShouldBeNil)

	_, _, err = BuildTree(cfg)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildTreeOrderIndependent(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`{"frames":[
		{"id":"grandchild","parent":"child"},
		{"id":"child","parent":"root"},
		{"id":"root","parent":""}
	]}`))
	test.That(t, err, test.ShouldBeNil)

	root, byID, err := BuildTree(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, byID["grandchild"].RootFrame(), test.ShouldEqual, root)
}
