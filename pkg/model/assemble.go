package model

import (
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// childLinkName maps a registered joint to the document link it carries.
// The synthesized root has no document joint; it adopts the document's
// root link.
func childLinkName(m *urdf.Model, jointName string) (string, error) {
	if jointName == rootJointName {
		return m.RootLink(), nil
	}
	joint, ok := m.Joint(jointName)
	if !ok {
		return "", errors.New(errors.ErrCodeMissingJoint,
			"joint %q not found in document", jointName)
	}
	return joint.ChildLink, nil
}

// childJointNames discovers the registered joints logically under the
// given joint by following the document's child links, resolving through
// any intermediate joint that has no registered node of its own until the
// next registered joint is reached. Sibling order follows document
// declaration order.
func childJointNames(m *urdf.Model, reg *jointRegistry, jointName string, depth int) ([]string, error) {
	if depth > maxTreeDepth {
		return nil, errors.New(errors.ErrCodeCycleDetected,
			"child discovery under joint %q exceeds depth %d", jointName, maxTreeDepth)
	}

	linkName, err := childLinkName(m, jointName)
	if err != nil {
		return nil, err
	}
	link, ok := m.Link(linkName)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingLink,
			"child link %q of joint %q not found", linkName, jointName)
	}

	var result []string
	for _, child := range link.ChildJoints {
		if reg.find(child) != nil {
			result = append(result, child)
			continue
		}
		nested, err := childJointNames(m, reg, child, depth+1)
		if err != nil {
			return nil, err
		}
		result = append(result, nested...)
	}
	return result, nil
}

// connectJoints wires the registered nodes into a tree below the given
// joint, preserving declared sibling order, and recurses. A discovered
// child without a registered node indicates an upstream construction
// failure and aborts the build.
func connectJoints(m *urdf.Model, reg *jointRegistry, parent *JointNode) error {
	children, err := childJointNames(m, reg, parent.name, 0)
	if err != nil {
		return err
	}
	for _, name := range children {
		child := reg.find(name)
		if child == nil {
			return errors.New(errors.ErrCodeMissingJoint,
				"joint %q discovered under %q was never created", name, parent.name)
		}
		child.parent = parent
		parent.children = append(parent.children, child)
		if err := connectJoints(m, reg, child); err != nil {
			return err
		}
	}
	return nil
}
