package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// GeometryKind tags the primitive variant of an attachment.
type GeometryKind int

const (
	// GeomMesh is an external mesh resource.
	GeomMesh GeometryKind = iota
	// GeomCylinder is an X-axis-aligned cylinder.
	GeomCylinder
	// GeomBox is an axis-aligned box.
	GeomBox
	// GeomCapsule is an X-axis-aligned capsule.
	GeomCapsule
	// GeomSegment is the medial line segment of a capsule, used for
	// fast proximity pre-filtering.
	GeomSegment
)

var geometryKindNames = map[GeometryKind]string{
	GeomMesh:     "mesh",
	GeomCylinder: "cylinder",
	GeomBox:      "box",
	GeomCapsule:  "capsule",
	GeomSegment:  "segment",
}

func (k GeometryKind) String() string {
	if s, ok := geometryKindNames[k]; ok {
		return s
	}
	return "mesh"
}

// GeometryAttachment is one placed output primitive. Pose is absolute,
// in the same reference frame as joint poses. Only the parameter fields
// matching Kind are meaningful.
type GeometryAttachment struct {
	Name  string
	Joint string
	Kind  GeometryKind
	Pose  mgl64.Mat4

	// Mesh fields
	Filename string
	Scale    mgl64.Vec3

	// Cylinder, capsule and segment fields
	Radius float64
	Length float64

	// Box field
	Size mgl64.Vec3

	// Segment endpoints in the primitive's local frame.
	P1 mgl64.Vec3
	P2 mgl64.Vec3
}

// GeometryFailure records a link whose geometry could not be resolved.
// These are reported on the result without aborting sibling links.
type GeometryFailure struct {
	Link string
	Err  error
}

// zToX reorients Z-axis document cylinders onto the X-axis canonical
// primitives.
var zToX = mgl64.HomogRotate3DY(math.Pi / 2)

// bodyAbsolutePose chains the parent joint's already-resolved absolute
// pose with a geometry block's local origin. Geometry offsets in the
// document are expressed in the original joint frame, so for actuated
// parent joints the normalization rotation is undone first.
func (p *Parser) bodyAbsolutePose(m *urdf.Model, link *urdf.Link, origin urdf.Pose) (mgl64.Mat4, error) {
	parentJointName := rootJointName
	if link.Name != m.RootLink() {
		parentJointName = link.ParentJoint
	}

	node := p.registry.find(parentJointName)
	if node == nil {
		return mgl64.Ident4(), errors.New(errors.ErrCodeMissingJoint,
			"parent joint %q of link %q was never created", parentJointName, link.Name)
	}
	parentInWorld := node.pose

	if link.Name != m.RootLink() {
		if joint, ok := m.Joint(parentJointName); ok && joint.Kind.Actuated() {
			if r, ok := NormalizeFrameOrientation(joint.Axis); ok {
				parentInWorld = parentInWorld.Mul4(r.Mat4().Transpose())
			}
		}
	}

	return parentInWorld.Mul4(origin.Mat4()), nil
}

// resolveGeometry maps a link's visual/collision geometry pair onto
// output primitives:
//
//   - mesh+mesh: one mesh, provided visual and collision reference the
//     same resource
//   - cylinder+cylinder: one cylinder, reoriented Z to X
//   - box+box: one box with the visual dimensions
//   - mesh+cylinder: a capsule approximation plus its medial segment,
//     both reoriented Z to X
//
// Any other combination is skipped. This is an intentional scope
// limitation of the description format mapping, not an error.
func (p *Parser) resolveGeometry(m *urdf.Model, link *urdf.Link) ([]GeometryAttachment, error) {
	visual := link.Visual.Geometry
	collision := link.Collision.Geometry
	jointName := link.ParentJoint
	if link.Name == m.RootLink() {
		jointName = rootJointName
	}

	switch {
	case visual.Type == urdf.GeometryMesh && collision.Type == urdf.GeometryMesh:
		if visual.Filename != collision.Filename {
			return nil, errors.New(errors.ErrCodeGeometryMismatch,
				"visual mesh %q and collision mesh %q differ for link %q",
				visual.Filename, collision.Filename, link.Name)
		}
		pose, err := p.bodyAbsolutePose(m, link, link.Visual.Origin)
		if err != nil {
			return nil, err
		}
		return []GeometryAttachment{{
			Name:     link.Name,
			Joint:    jointName,
			Kind:     GeomMesh,
			Pose:     pose,
			Filename: visual.Filename,
			Scale:    visual.Scale,
		}}, nil

	case visual.Type == urdf.GeometryCylinder && collision.Type == urdf.GeometryCylinder:
		pose, err := p.bodyAbsolutePose(m, link, link.Visual.Origin)
		if err != nil {
			return nil, err
		}
		return []GeometryAttachment{{
			Name:   link.Name,
			Joint:  jointName,
			Kind:   GeomCylinder,
			Pose:   pose.Mul4(zToX),
			Radius: visual.Radius,
			Length: visual.Length,
		}}, nil

	case visual.Type == urdf.GeometryBox && collision.Type == urdf.GeometryBox:
		pose, err := p.bodyAbsolutePose(m, link, link.Visual.Origin)
		if err != nil {
			return nil, err
		}
		return []GeometryAttachment{{
			Name:  link.Name,
			Joint: jointName,
			Kind:  GeomBox,
			Pose:  pose,
			Size:  visual.Size,
		}}, nil

	case visual.Type == urdf.GeometryMesh && collision.Type == urdf.GeometryCylinder:
		// The collision cylinder under a visual mesh is treated as a
		// capsule approximation of the limb.
		pose, err := p.bodyAbsolutePose(m, link, link.Collision.Origin)
		if err != nil {
			return nil, err
		}
		pose = pose.Mul4(zToX)
		radius := collision.Radius
		length := collision.Length
		half := mgl64.Vec3{length / 2, 0, 0}
		return []GeometryAttachment{
			{
				Name:   link.Name,
				Joint:  jointName,
				Kind:   GeomCapsule,
				Pose:   pose,
				Radius: radius,
				Length: length,
			},
			{
				Name:   link.Name + "-segment",
				Joint:  jointName,
				Kind:   GeomSegment,
				Pose:   pose,
				Radius: radius,
				Length: length,
				P1:     half.Mul(-1),
				P2:     half,
			},
		}, nil
	}

	return nil, nil
}
