package model

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// BodyNode is the rigid body owned by a joint: mass, center of mass and
// inertia tensor, expressed in the owning joint's normalized frame.
type BodyNode struct {
	Mass         float64
	CenterOfMass mgl64.Vec3
	Inertia      mgl64.Mat3
}

// PrincipalMoments returns the eigenvalues of the inertia tensor in
// ascending order. Frame re-expression is a similarity transform, so the
// principal moments are independent of the frame the tensor is stored in.
func (b *BodyNode) PrincipalMoments() [3]float64 {
	d := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			d.SetSym(i, j, b.Inertia.At(i, j))
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(d, false) {
		return [3]float64{}
	}
	var vals [3]float64
	copy(vals[:], eig.Values(nil))
	return vals
}

// reexpressInertial moves a center-of-mass offset and inertia tensor into
// the normalized joint frame: com' = R^T * com and I' = R^T * I * R,
// the similarity transform for a symmetric tensor under a frame change.
// R is orthonormal, so its transpose is its inverse.
func reexpressInertial(r mgl64.Mat3, com mgl64.Vec3, inertia mgl64.Mat3) (mgl64.Vec3, mgl64.Mat3) {
	rt := r.Transpose()
	return rt.Mul3x1(com), rt.Mul3(inertia).Mul3(r)
}

// bodyForLink reads the link's inertial block into a BodyNode, applying
// the normalization re-expression when the owning joint is actuated. A
// missing inertial block yields a zero body and ok=false.
func bodyForLink(link *urdf.Link, normalized *mgl64.Mat3) (*BodyNode, bool) {
	body := &BodyNode{}
	if link.Inertial == nil {
		return body, false
	}

	body.Mass = link.Inertial.Mass
	body.CenterOfMass = link.Inertial.Origin.Position
	body.Inertia = link.Inertial.Tensor()

	if normalized != nil {
		body.CenterOfMass, body.Inertia =
			reexpressInertial(*normalized, body.CenterOfMass, body.Inertia)
	}
	return body, true
}

// addBodiesToJoints attaches one body to every registered joint and
// resolves geometry for links that carry both visual and collision
// blocks. Geometry mismatches are recorded per link and do not abort
// the remaining links.
func (p *Parser) addBodiesToJoints(m *urdf.Model) error {
	for _, name := range p.registry.order {
		node := p.registry.nodes[name]

		linkName, err := childLinkName(m, name)
		if err != nil {
			return err
		}
		link, ok := m.Link(linkName)
		if !ok {
			return errors.New(errors.ErrCodeMissingLink,
				"link %q not found, inconsistent model", linkName)
		}

		// The root is exempt from re-expression: its frame is never
		// normalized.
		var normalized *mgl64.Mat3
		if name != rootJointName {
			if joint, ok := m.Joint(name); ok && joint.Kind.Actuated() {
				if r, ok := NormalizeFrameOrientation(joint.Axis); ok {
					normalized = &r
				} else {
					p.warnf("joint %q has a degenerate axis, skipping inertial re-expression", name)
				}
			}
		}

		body, hadInertial := bodyForLink(link, normalized)
		if !hadInertial {
			p.warnf("missing inertial information in link %q", linkName)
		}
		node.body = body

		if link.Visual != nil && link.Collision != nil {
			attachments, err := p.resolveGeometry(m, link)
			if err != nil {
				p.geometryFailures = append(p.geometryFailures, GeometryFailure{
					Link: link.Name,
					Err:  err,
				})
				continue
			}
			p.geometry = append(p.geometry, attachments...)
		}
	}
	return nil
}
