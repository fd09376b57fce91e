package model

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// RoleTable maps anatomical roles to the link names that identify them in
// the document. The waist is the exception: it binds directly to the
// synthesized root joint rather than to a link.
//
// The defaults follow the humanoid naming convention this format family
// uses. Robot families with different conventions override the table,
// programmatically or from a TOML file.
type RoleTable struct {
	Waist      string `toml:"waist"`
	Chest      string `toml:"chest"`
	LeftWrist  string `toml:"left_wrist"`
	RightWrist string `toml:"right_wrist"`
	LeftHand   string `toml:"left_hand"`
	RightHand  string `toml:"right_hand"`
	LeftAnkle  string `toml:"left_ankle"`
	RightAnkle string `toml:"right_ankle"`
	LeftFoot   string `toml:"left_foot"`
	RightFoot  string `toml:"right_foot"`
	Gaze       string `toml:"gaze"`
}

// DefaultRoleTable returns the fixed naming convention contract: link
// names torso, l_wrist, r_wrist, l_gripper, r_gripper, l_ankle, r_ankle,
// l_sole, r_sole, gaze, and the root joint name for the waist.
func DefaultRoleTable() RoleTable {
	return RoleTable{
		Waist:      rootJointName,
		Chest:      "torso",
		LeftWrist:  "l_wrist",
		RightWrist: "r_wrist",
		LeftHand:   "l_gripper",
		RightHand:  "r_gripper",
		LeftAnkle:  "l_ankle",
		RightAnkle: "r_ankle",
		LeftFoot:   "l_sole",
		RightFoot:  "r_sole",
		Gaze:       "gaze",
	}
}

// LoadRoleTable reads a TOML role table from path. Fields absent from the
// file keep their default values.
func LoadRoleTable(path string) (RoleTable, error) {
	table := DefaultRoleTable()
	data, err := os.ReadFile(path)
	if err != nil {
		return table, errors.Wrap(errors.ErrCodeResourceNotFound, err,
			"read role table %s", path)
	}
	if err := toml.Unmarshal(data, &table); err != nil {
		return table, errors.Wrap(errors.ErrCodeInvalidDocument, err,
			"parse role table %s", path)
	}
	return table, nil
}

// HandFrame is the derived local end-effector frame of a hand, expressed
// in the associated wrist frame: the hand center and the three orthogonal
// axes read off the wrist-to-hand rotation's columns.
type HandFrame struct {
	Center         mgl64.Vec3
	ThumbAxis      mgl64.Vec3
	ForeFingerAxis mgl64.Vec3
	PalmNormal     mgl64.Vec3
}

// FootFrame is the derived frame of a foot: the ankle position expressed
// in the foot-local frame.
type FootFrame struct {
	AnklePosition mgl64.Vec3
}

// Anatomy binds anatomical roles to joint names for one built robot.
// Unresolved roles are empty strings; unresolved derived frames are nil.
type Anatomy struct {
	WaistJoint      string
	ChestJoint      string
	LeftWristJoint  string
	RightWristJoint string
	LeftHandJoint   string
	RightHandJoint  string
	LeftAnkleJoint  string
	RightAnkleJoint string
	LeftFootJoint   string
	RightFootJoint  string
	GazeJoint       string

	LeftHand  *HandFrame
	RightHand *HandFrame
	LeftFoot  *FootFrame
	RightFoot *FootFrame

	// GazeDirection and GazeOrigin are expressed in the gaze joint's
	// local frame, meaningful only when GazeJoint is set.
	GazeDirection mgl64.Vec3
	GazeOrigin    mgl64.Vec3
}

// findSpecialJoint resolves one role: look up the well-known link name
// and take its parent joint.
func findSpecialJoint(m *urdf.Model, linkName string) string {
	if link, ok := m.Link(linkName); ok {
		return link.ParentJoint
	}
	return ""
}

// findSpecialJoints resolves every role of the table against the
// document. The waist is hard-wired to the root joint name from the
// table rather than looked up.
func (p *Parser) findSpecialJoints(m *urdf.Model) {
	p.anatomy = Anatomy{
		WaistJoint:      p.table.Waist,
		ChestJoint:      findSpecialJoint(m, p.table.Chest),
		LeftWristJoint:  findSpecialJoint(m, p.table.LeftWrist),
		RightWristJoint: findSpecialJoint(m, p.table.RightWrist),
		LeftHandJoint:   findSpecialJoint(m, p.table.LeftHand),
		RightHandJoint:  findSpecialJoint(m, p.table.RightHand),
		LeftAnkleJoint:  findSpecialJoint(m, p.table.LeftAnkle),
		RightAnkleJoint: findSpecialJoint(m, p.table.RightAnkle),
		LeftFootJoint:   findSpecialJoint(m, p.table.LeftFoot),
		RightFootJoint:  findSpecialJoint(m, p.table.RightFoot),
		GazeJoint:       findSpecialJoint(m, p.table.Gaze),
	}
}

// handInformation derives the hand local frame from the initial absolute
// poses of the hand and wrist joints: the rotation part of
// wrist^-1 * hand carries the thumb axis, forefinger axis and palm
// normal as columns, and the translation part is the hand center.
func handInformation(hand, wrist *JointNode) *HandFrame {
	wristToHand := wrist.pose.Inv().Mul4(hand.pose)
	return &HandFrame{
		Center:         wristToHand.Col(3).Vec3(),
		ThumbAxis:      wristToHand.Col(0).Vec3(),
		ForeFingerAxis: wristToHand.Col(1).Vec3(),
		PalmNormal:     wristToHand.Col(2).Vec3(),
	}
}

// anklePositionInLocalFrame derives the ankle position in the foot-local
// frame from the initial absolute poses.
func anklePositionInLocalFrame(foot, ankle *JointNode) *FootFrame {
	footToAnkle := foot.pose.Inv().Mul4(ankle.pose)
	return &FootFrame{AnklePosition: footToAnkle.Col(3).Vec3()}
}

// fillHandsAndFeet derives end-effector frames for each hand/wrist and
// foot/ankle pair present in the registry. Incomplete pairs are left
// unset with a notice.
func (p *Parser) fillHandsAndFeet() {
	leftHand := p.registry.find(p.anatomy.LeftHandJoint)
	leftWrist := p.registry.find(p.anatomy.LeftWristJoint)
	if leftHand != nil && leftWrist != nil {
		p.anatomy.LeftHand = handInformation(leftHand, leftWrist)
	} else {
		p.warnf("could not set left hand")
	}

	rightHand := p.registry.find(p.anatomy.RightHandJoint)
	rightWrist := p.registry.find(p.anatomy.RightWristJoint)
	if rightHand != nil && rightWrist != nil {
		p.anatomy.RightHand = handInformation(rightHand, rightWrist)
	} else {
		p.warnf("could not set right hand")
	}

	leftFoot := p.registry.find(p.anatomy.LeftFootJoint)
	leftAnkle := p.registry.find(p.anatomy.LeftAnkleJoint)
	if leftFoot != nil && leftAnkle != nil {
		p.anatomy.LeftFoot = anklePositionInLocalFrame(leftFoot, leftAnkle)
	} else {
		p.warnf("could not set left foot")
	}

	rightFoot := p.registry.find(p.anatomy.RightFootJoint)
	rightAnkle := p.registry.find(p.anatomy.RightAnkleJoint)
	if rightFoot != nil && rightAnkle != nil {
		p.anatomy.RightFoot = anklePositionInLocalFrame(rightFoot, rightAnkle)
	} else {
		p.warnf("could not set right foot")
	}
}

// fillGaze sets the gaze direction and origin in the gaze joint's local
// frame. The direction is the joint's local X axis.
func (p *Parser) fillGaze() {
	if p.registry.find(p.anatomy.GazeJoint) == nil {
		p.warnf("no gaze joint found")
		return
	}
	p.anatomy.GazeDirection = mgl64.Vec3{1, 0, 0}
	p.anatomy.GazeOrigin = mgl64.Vec3{}
}
