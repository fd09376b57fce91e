package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// JointType classifies the motion freedom of an output joint node.
type JointType int

const (
	// Anchor is a rigid 0-DOF attachment.
	Anchor JointType = iota
	// Rotation is a 1-DOF rotation about the local X axis.
	Rotation
	// Translation is a 1-DOF translation along the local X axis.
	Translation
	// FreeFlyer is a 6-DOF floating attachment (three translations
	// followed by roll, pitch, yaw).
	FreeFlyer
)

var jointTypeNames = map[JointType]string{
	Anchor:      "anchor",
	Rotation:    "rotation",
	Translation: "translation",
	FreeFlyer:   "freeflyer",
}

func (t JointType) String() string {
	if s, ok := jointTypeNames[t]; ok {
		return s
	}
	return "anchor"
}

// dofCount returns the number of degrees of freedom for the type.
func (t JointType) dofCount() int {
	switch t {
	case Rotation, Translation:
		return 1
	case FreeFlyer:
		return 6
	default:
		return 0
	}
}

// DOF describes one degree of freedom of a joint. Position bounds apply
// only when Bounded is set; velocity and effort bounds are symmetric
// magnitudes, infinite when unset.
type DOF struct {
	Bounded     bool
	Lower       float64
	Upper       float64
	MaxVelocity float64
	MaxEffort   float64
}

func unboundedDOF() DOF {
	return DOF{
		Lower:       math.Inf(-1),
		Upper:       math.Inf(1),
		MaxVelocity: math.Inf(1),
		MaxEffort:   math.Inf(1),
	}
}

// JointNode is one node of the assembled kinematic tree. Nodes are
// mutable during construction and treated as read-only once the build
// returns.
type JointNode struct {
	name     string
	typ      JointType
	pose     mgl64.Mat4
	dofs     []DOF
	body     *BodyNode
	children []*JointNode
	parent   *JointNode
}

// Name returns the joint name, unique within one build.
func (j *JointNode) Name() string { return j.name }

// Type returns the joint's motion classification.
func (j *JointNode) Type() JointType { return j.typ }

// Pose returns the joint's absolute pose in the build's reference frame.
// For actuated joints the rotation part carries the normalized motion
// frame: column 0 is the unit motion axis.
func (j *JointNode) Pose() mgl64.Mat4 { return j.pose }

// DOF returns the joint's degrees of freedom in order. The slice is
// shared; callers must not modify it.
func (j *JointNode) DOF() []DOF { return j.dofs }

// Body returns the rigid body attached to the joint, or nil before body
// attachment runs.
func (j *JointNode) Body() *BodyNode { return j.body }

// Children returns the child joints in document declaration order.
func (j *JointNode) Children() []*JointNode { return j.children }

// Parent returns the parent joint, or nil for the root. The back
// reference exists for diagnostics; ownership runs strictly downward.
func (j *JointNode) Parent() *JointNode { return j.parent }

// =============================================================================
// Registry
// =============================================================================

// jointRegistry is the per-build name-keyed node store. Rejecting
// duplicate names here is the sole defense against duplicate or cyclic
// joint instantiation, so every factory checks it before inserting.
type jointRegistry struct {
	nodes map[string]*JointNode
	order []string
}

func newJointRegistry() *jointRegistry {
	return &jointRegistry{nodes: make(map[string]*JointNode)}
}

func (r *jointRegistry) find(name string) *JointNode {
	return r.nodes[name]
}

func (r *jointRegistry) insert(j *JointNode) error {
	if _, exists := r.nodes[j.name]; exists {
		return errors.New(errors.ErrCodeDuplicateJoint,
			"duplicate %s joint %q", j.typ, j.name)
	}
	r.nodes[j.name] = j
	r.order = append(r.order, j.name)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// createRotationJoint registers a bounded 1-DOF rotation joint. With
// limits present the single freedom gets the declared position bounds and
// symmetric velocity/effort bounds; without limits it stays unbounded.
func (r *jointRegistry) createRotationJoint(name string, pose mgl64.Mat4, limits *urdf.Limits) (*JointNode, error) {
	j := &JointNode{name: name, typ: Rotation, pose: pose, dofs: []DOF{unboundedDOF()}}
	if limits != nil {
		j.dofs[0] = DOF{
			Bounded:     true,
			Lower:       limits.Lower,
			Upper:       limits.Upper,
			MaxVelocity: limits.Velocity,
			MaxEffort:   limits.Effort,
		}
	}
	if err := r.insert(j); err != nil {
		return nil, err
	}
	return j, nil
}

// createContinuousJoint registers an explicitly unbounded 1-DOF rotation
// joint.
func (r *jointRegistry) createContinuousJoint(name string, pose mgl64.Mat4) (*JointNode, error) {
	j := &JointNode{name: name, typ: Rotation, pose: pose, dofs: []DOF{unboundedDOF()}}
	if err := r.insert(j); err != nil {
		return nil, err
	}
	return j, nil
}

// createTranslationJoint registers a bounded 1-DOF translation joint.
func (r *jointRegistry) createTranslationJoint(name string, pose mgl64.Mat4, limits *urdf.Limits) (*JointNode, error) {
	j := &JointNode{name: name, typ: Translation, pose: pose, dofs: []DOF{unboundedDOF()}}
	if limits != nil {
		j.dofs[0] = DOF{
			Bounded:     true,
			Lower:       limits.Lower,
			Upper:       limits.Upper,
			MaxVelocity: limits.Velocity,
			MaxEffort:   limits.Effort,
		}
	}
	if err := r.insert(j); err != nil {
		return nil, err
	}
	return j, nil
}

// createFreeFlyerJoint registers a 6-DOF floating joint with all freedoms
// unbounded. The floating base bound policy is applied separately at the
// end of the build.
func (r *jointRegistry) createFreeFlyerJoint(name string, pose mgl64.Mat4) (*JointNode, error) {
	dofs := make([]DOF, 6)
	for i := range dofs {
		dofs[i] = unboundedDOF()
	}
	j := &JointNode{name: name, typ: FreeFlyer, pose: pose, dofs: dofs}
	if err := r.insert(j); err != nil {
		return nil, err
	}
	return j, nil
}

// createAnchorJoint registers a rigid 0-DOF joint.
func (r *jointRegistry) createAnchorJoint(name string, pose mgl64.Mat4) (*JointNode, error) {
	j := &JointNode{name: name, typ: Anchor, pose: pose}
	if err := r.insert(j); err != nil {
		return nil, err
	}
	return j, nil
}

// setFreeFlyerBounds applies the floating base bound policy to the root:
// translations and yaw stay unbounded, roll and pitch are clamped to
// +-30 degrees. This approximates a legged robot whose base cannot tip
// far without falling.
func setFreeFlyerBounds(root *JointNode) {
	if root == nil || root.typ != FreeFlyer {
		return
	}
	for i := 3; i < 5; i++ {
		root.dofs[i].Bounded = true
		root.dofs[i].Lower = -math.Pi / 6
		root.dofs[i].Upper = math.Pi / 6
	}
}
