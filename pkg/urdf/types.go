package urdf

import (
	"github.com/go-gl/mathgl/mgl64"
)

// JointKind identifies the motion freedom a joint declares.
type JointKind int

const (
	// KindUnknown marks a joint whose type attribute was missing or
	// unrecognized. The model builder treats it as a fatal input error.
	KindUnknown JointKind = iota
	// KindRevolute is a 1-DOF rotation with position bounds.
	KindRevolute
	// KindContinuous is a 1-DOF rotation without position bounds.
	KindContinuous
	// KindPrismatic is a 1-DOF translation with position bounds.
	KindPrismatic
	// KindFloating is a 6-DOF unconstrained attachment.
	KindFloating
	// KindFixed is a rigid 0-DOF attachment.
	KindFixed
	// KindPlanar is 2-DOF translation plus 1-DOF rotation in a plane.
	// It has no equivalent in the output representation and is rejected.
	KindPlanar
)

var kindNames = map[JointKind]string{
	KindUnknown:    "unknown",
	KindRevolute:   "revolute",
	KindContinuous: "continuous",
	KindPrismatic:  "prismatic",
	KindFloating:   "floating",
	KindFixed:      "fixed",
	KindPlanar:     "planar",
}

// String returns the URDF type attribute value for the kind.
func (k JointKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Actuated reports whether the joint kind carries a single actuated
// degree of freedom whose axis must be normalized by the model builder.
func (k JointKind) Actuated() bool {
	return k == KindRevolute || k == KindContinuous || k == KindPrismatic
}

// Pose is a rigid-body transform: a translation and a rotation.
// The zero value is not an identity pose - use IdentityPose.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns the identity transform.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// Mat4 returns the homogeneous 4x4 matrix of the pose,
// translation applied after rotation.
func (p Pose) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
		Mul4(p.Rotation.Normalize().Mat4())
}

// Limits carries the position, velocity and effort limits declared on a
// bounded joint. Velocity and effort are magnitudes; the model builder
// applies them symmetrically.
type Limits struct {
	Lower    float64
	Upper    float64
	Velocity float64
	Effort   float64
}

// Inertial is the mass distribution block of a link: mass, the
// center-of-mass offset carried in Origin, and the six independent
// components of the symmetric 3x3 inertia tensor.
type Inertial struct {
	Origin Pose
	Mass   float64
	IXX    float64
	IXY    float64
	IXZ    float64
	IYY    float64
	IYZ    float64
	IZZ    float64
}

// Tensor assembles the full symmetric inertia tensor.
func (i Inertial) Tensor() mgl64.Mat3 {
	// Symmetric, so column-major and row-major layouts coincide.
	return mgl64.Mat3{
		i.IXX, i.IXY, i.IXZ,
		i.IXY, i.IYY, i.IYZ,
		i.IXZ, i.IYZ, i.IZZ,
	}
}

// GeometryType distinguishes the geometric primitives a link can carry.
type GeometryType int

const (
	// GeometryMesh references an external mesh resource by URI.
	GeometryMesh GeometryType = iota
	// GeometryCylinder is a Z-axis-aligned cylinder.
	GeometryCylinder
	// GeometryBox is an axis-aligned box.
	GeometryBox
	// GeometrySphere is a sphere. Decoded for completeness; the model
	// builder has no primitive for it and skips it.
	GeometrySphere
)

// Geometry is a tagged union over the primitive shapes of the description
// format. Only the fields matching Type are meaningful.
type Geometry struct {
	Type GeometryType

	// Mesh fields
	Filename string
	Scale    mgl64.Vec3

	// Cylinder and sphere fields
	Radius float64
	Length float64

	// Box field
	Size mgl64.Vec3
}

// Visual is a link's display geometry with its local placement.
type Visual struct {
	Origin   Pose
	Geometry Geometry
}

// Collision is a link's collision geometry with its local placement.
type Collision struct {
	Origin   Pose
	Geometry Geometry
}

// Link is a rigid body segment of the robot. ParentJoint is empty for the
// root link. ChildJoints preserves document declaration order.
type Link struct {
	Name        string
	Inertial    *Inertial
	Visual      *Visual
	Collision   *Collision
	ParentJoint string
	ChildJoints []string
}

// Joint connects a parent link to a child link with a typed freedom.
// Origin is the parent-to-joint transform; Axis is the motion axis in the
// joint frame (unit length not required, defaults to X).
type Joint struct {
	Name       string
	Kind       JointKind
	Axis       mgl64.Vec3
	Origin     Pose
	ParentLink string
	ChildLink  string
	Limits     *Limits
}
