package model

import "slices"

// Robot is the immutable result of one build: the kinematic tree with its
// bodies, geometry attachments and anatomy registry. A new build produces
// a new Robot; existing Robots are never mutated.
type Robot struct {
	name             string
	buildID          string
	root             *JointNode
	joints           []*JointNode
	byName           map[string]*JointNode
	actuated         []*JointNode
	anatomy          Anatomy
	geometry         []GeometryAttachment
	geometryFailures []GeometryFailure
	warnings         []string
}

// Name returns the robot name from the source document.
func (r *Robot) Name() string { return r.name }

// BuildID returns the unique identifier assigned to this build.
func (r *Robot) BuildID() string { return r.buildID }

// Root returns the synthesized floating base joint.
func (r *Robot) Root() *JointNode { return r.root }

// Joints returns every joint in creation order: the root first, then the
// document joints in declaration order.
func (r *Robot) Joints() []*JointNode { return slices.Clone(r.joints) }

// Joint returns the joint with the given name, or nil.
func (r *Robot) Joint(name string) *JointNode { return r.byName[name] }

// JointCount returns the number of joints including the root.
func (r *Robot) JointCount() int { return len(r.joints) }

// ActuatedJoints returns the revolute, continuous and prismatic joints in
// document declaration order.
func (r *Robot) ActuatedJoints() []*JointNode { return slices.Clone(r.actuated) }

// Anatomy returns the resolved anatomy registry.
func (r *Robot) Anatomy() Anatomy { return r.anatomy }

// Geometry returns the resolved geometry attachments.
func (r *Robot) Geometry() []GeometryAttachment { return slices.Clone(r.geometry) }

// GeometryFailures returns the links whose geometry could not be
// resolved. A non-empty slice does not invalidate the rest of the model.
func (r *Robot) GeometryFailures() []GeometryFailure {
	return slices.Clone(r.geometryFailures)
}

// Warnings returns the recoverable gaps recorded during the build.
func (r *Robot) Warnings() []string { return slices.Clone(r.warnings) }
