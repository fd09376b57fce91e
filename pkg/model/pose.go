package model

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// maxTreeDepth bounds the upward walk during pose resolution. A chain
// longer than this only occurs on a cyclic or degenerate document.
const maxTreeDepth = 1024

// referenceJointName is the frame all joint poses are expressed in.
// Documents following the humanoid naming convention declare it; when
// absent the walk simply terminates at the document root, which leaves
// poses expressed in the root link frame.
const referenceJointName = "base_footprint_joint"

// PoseInReferenceFrame composes the pose of target's parent-to-joint
// origin transform into the frame of the reference joint, walking the
// document graph upward from target through successive parent joints.
//
// The walk terminates when the reference joint is reached, when a link
// has no parent joint, or when a parent link cannot be found. Each step
// composes as parentward * local; the order is significant.
//
// When reference equals target the result is exactly the target's own
// parent-to-origin transform.
func PoseInReferenceFrame(m *urdf.Model, reference, target string) (mgl64.Mat4, error) {
	joint, ok := m.Joint(target)
	if !ok {
		return mgl64.Ident4(), errors.New(errors.ErrCodeMissingJoint,
			"joint %q not found while resolving pose", target)
	}

	pose := joint.Origin.Mat4()
	if reference == target {
		return pose, nil
	}

	visited := map[string]bool{target: true}
	for depth := 0; ; depth++ {
		if depth > maxTreeDepth {
			return mgl64.Ident4(), errors.New(errors.ErrCodeCycleDetected,
				"parent chain of joint %q exceeds %d links", target, maxTreeDepth)
		}

		parentLink, ok := m.Link(joint.ParentLink)
		if !ok || parentLink.ParentJoint == "" {
			return pose, nil
		}

		parent, ok := m.Joint(parentLink.ParentJoint)
		if !ok {
			return mgl64.Ident4(), errors.New(errors.ErrCodeMissingParent,
				"parent joint %q of link %q not found", parentLink.ParentJoint, parentLink.Name)
		}
		if visited[parent.Name] {
			return mgl64.Ident4(), errors.New(errors.ErrCodeCycleDetected,
				"joint %q appears twice on the parent chain of %q", parent.Name, target)
		}
		visited[parent.Name] = true

		pose = parent.Origin.Mat4().Mul4(pose)
		if parent.Name == reference {
			return pose, nil
		}
		joint = parent
	}
}
