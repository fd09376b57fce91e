package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/observability"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

const (
	// rootJointName is the name of the synthesized floating base.
	rootJointName = "base_joint"
	// rootLinkName is the conventional name of the link the floating
	// base carries. Documents that name their root link differently
	// still work: the root joint adopts whatever root link the
	// document declares.
	rootLinkName = "base_link"
)

// Parser builds kinematic trees from decoded robot descriptions. One
// Parser may be reused across builds; all scratch state is reset at the
// start of each build. Parsers are not safe for concurrent use.
type Parser struct {
	table RoleTable

	// Per-build scratch state, reset by Build.
	ctx              context.Context
	registry         *jointRegistry
	root             *JointNode
	anatomy          Anatomy
	geometry         []GeometryAttachment
	geometryFailures []GeometryFailure
	warnings         []string
	buildID          string
}

// Option configures a Parser.
type Option func(*Parser)

// WithRoleTable overrides the anatomy role table.
func WithRoleTable(table RoleTable) Option {
	return func(p *Parser) { p.table = table }
}

// NewParser creates a Parser with the default role table.
func NewParser(opts ...Option) *Parser {
	p := &Parser{table: DefaultRoleTable()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) reset(ctx context.Context) {
	p.ctx = ctx
	p.registry = newJointRegistry()
	p.root = nil
	p.anatomy = Anatomy{}
	p.geometry = nil
	p.geometryFailures = nil
	p.warnings = nil
	p.buildID = uuid.NewString()
}

func (p *Parser) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.warnings = append(p.warnings, msg)
	observability.Build().OnWarning(p.ctx, p.buildID, msg)
}

// Build constructs the kinematic tree for the document. On any
// structural error the partially-built state is discarded and no usable
// output is returned.
func (p *Parser) Build(ctx context.Context, m *urdf.Model) (*Robot, error) {
	p.reset(ctx)
	start := time.Now()
	observability.Build().OnBuildStart(ctx, p.buildID, m.Name())

	robot, err := p.build(m)
	jointCount := 0
	if robot != nil {
		jointCount = len(robot.joints)
	}
	observability.Build().OnBuildComplete(ctx, p.buildID, jointCount, time.Since(start), err)
	return robot, err
}

func (p *Parser) build(m *urdf.Model) (*Robot, error) {
	p.findSpecialJoints(m)

	if err := p.parseJoints(m); err != nil {
		return nil, err
	}
	if err := connectJoints(m, p.registry, p.root); err != nil {
		return nil, err
	}
	if err := p.addBodiesToJoints(m); err != nil {
		return nil, err
	}

	actuated, err := p.actuatedJoints(m)
	if err != nil {
		return nil, err
	}

	p.fillGaze()
	p.fillHandsAndFeet()
	setFreeFlyerBounds(p.root)

	return p.assembleRobot(m, actuated), nil
}

// parseJoints creates the synthesized floating root and one typed node
// per document joint, in document declaration order. Every joint pose is
// resolved into the reference frame before creation; actuated joints
// additionally get their motion frame normalized.
func (p *Parser) parseJoints(m *urdf.Model) error {
	root, err := p.registry.createFreeFlyerJoint(rootJointName, urdf.IdentityPose().Mat4())
	if err != nil {
		return err
	}
	p.root = root

	for _, name := range m.JointNames() {
		joint, _ := m.Joint(name)

		pose, err := PoseInReferenceFrame(m, referenceJointName, name)
		if err != nil {
			return err
		}
		if joint.Kind.Actuated() {
			r, ok := NormalizeFrameOrientation(joint.Axis)
			if !ok {
				p.warnf("joint %q has a degenerate axis, keeping identity frame", name)
			}
			pose = pose.Mul4(r.Mat4())
		}

		switch joint.Kind {
		case urdf.KindRevolute:
			_, err = p.registry.createRotationJoint(name, pose, joint.Limits)
		case urdf.KindContinuous:
			_, err = p.registry.createContinuousJoint(name, pose)
		case urdf.KindPrismatic:
			_, err = p.registry.createTranslationJoint(name, pose, joint.Limits)
		case urdf.KindFloating:
			_, err = p.registry.createFreeFlyerJoint(name, pose)
		case urdf.KindFixed:
			_, err = p.registry.createAnchorJoint(name, pose)
		case urdf.KindPlanar:
			return errors.New(errors.ErrCodePlanarUnsupported,
				"joint %q is planar; planar joints are not supported", name)
		default:
			return errors.New(errors.ErrCodeUnsupportedJoint,
				"joint %q has unknown kind", name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// actuatedJoints collects the nodes for every revolute, continuous and
// prismatic document joint, in document declaration order.
func (p *Parser) actuatedJoints(m *urdf.Model) ([]*JointNode, error) {
	var result []*JointNode
	for _, name := range m.JointNames() {
		joint, _ := m.Joint(name)
		if !joint.Kind.Actuated() {
			continue
		}
		node := p.registry.find(name)
		if node == nil {
			return nil, errors.New(errors.ErrCodeInternal,
				"actuated joint %q has no registered node", name)
		}
		result = append(result, node)
	}
	return result, nil
}

func (p *Parser) assembleRobot(m *urdf.Model, actuated []*JointNode) *Robot {
	joints := make([]*JointNode, 0, len(p.registry.order))
	byName := make(map[string]*JointNode, len(p.registry.order))
	for _, name := range p.registry.order {
		node := p.registry.nodes[name]
		joints = append(joints, node)
		byName[name] = node
	}

	return &Robot{
		name:             m.Name(),
		buildID:          p.buildID,
		root:             p.root,
		joints:           joints,
		byName:           byName,
		actuated:         actuated,
		anatomy:          p.anatomy,
		geometry:         p.geometry,
		geometryFailures: p.geometryFailures,
		warnings:         p.warnings,
	}
}
