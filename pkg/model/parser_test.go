package model

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
)

const onePendulum = `
<robot name="pendulum">
  <link name="base_link"/>
  <link name="arm"/>
  <joint name="j1" type="revolute">
    <axis xyz="0 0 1"/>
    <parent link="base_link"/>
    <child link="arm"/>
    <limit lower="-1" upper="1" velocity="2" effort="5"/>
  </joint>
</robot>`

func TestBuildSingleRevoluteJoint(t *testing.T) {
	m := mustDecode(t, onePendulum)

	robot, err := NewParser().Build(context.Background(), m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if robot.JointCount() != 2 {
		t.Fatalf("JointCount() = %d, want 2 (root + j1)", robot.JointCount())
	}

	root := robot.Root()
	if root.Name() != "base_joint" || root.Type() != FreeFlyer {
		t.Errorf("root = %s (%s), want base_joint (freeflyer)", root.Name(), root.Type())
	}
	if !root.Pose().ApproxEqualThreshold(mgl64.Ident4(), tol) {
		t.Errorf("root pose = %v, want identity", root.Pose())
	}

	j1 := robot.Joint("j1")
	if j1 == nil {
		t.Fatal("joint j1 missing from output")
	}
	if j1.Type() != Rotation {
		t.Errorf("j1 type = %s, want rotation", j1.Type())
	}

	dof := j1.DOF()[0]
	if !dof.Bounded || dof.Lower != -1 || dof.Upper != 1 ||
		dof.MaxVelocity != 2 || dof.MaxEffort != 5 {
		t.Errorf("j1 bounds = %+v, want [-1, 1] vel 2 effort 5", dof)
	}

	// The normalized frame's first column is the declared motion axis.
	pose := j1.Pose()
	col0 := mgl64.Vec3{pose.At(0, 0), pose.At(1, 0), pose.At(2, 0)}
	if !vecApproxEqual(col0, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("j1 frame column 0 = %v, want (0, 0, 1)", col0)
	}

	if len(robot.ActuatedJoints()) != 1 || robot.ActuatedJoints()[0].Name() != "j1" {
		t.Errorf("ActuatedJoints() = %v, want [j1]", robot.ActuatedJoints())
	}
}

func TestBuildFreeFlyerBoundPolicy(t *testing.T) {
	m := mustDecode(t, onePendulum)

	robot, err := NewParser().Build(context.Background(), m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	dofs := robot.Root().DOF()
	for i := 0; i < 3; i++ {
		if dofs[i].Bounded {
			t.Errorf("root translation freedom %d is bounded", i)
		}
	}
	for i := 3; i < 5; i++ {
		if !dofs[i].Bounded || dofs[i].Upper != math.Pi/6 {
			t.Errorf("root roll/pitch freedom %d = %+v, want +-pi/6", i, dofs[i])
		}
	}
	if dofs[5].Bounded {
		t.Error("root yaw freedom is bounded")
	}
}

const wristGripper = `
<robot name="arm">
  <link name="base_link"/>
  <link name="l_wrist"/>
  <link name="l_gripper"/>
  <joint name="wrist_joint" type="revolute">
    <axis xyz="0 0 1"/>
    <origin xyz="0 0.2 0.5"/>
    <parent link="base_link"/>
    <child link="l_wrist"/>
    <limit lower="-2" upper="2" velocity="1" effort="10"/>
  </joint>
  <joint name="gripper_joint" type="fixed">
    <origin xyz="0.1 0 0"/>
    <parent link="l_wrist"/>
    <child link="l_gripper"/>
  </joint>
</robot>`

func TestBuildAnatomyHandFrame(t *testing.T) {
	m := mustDecode(t, wristGripper)

	robot, err := NewParser().Build(context.Background(), m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	anatomy := robot.Anatomy()
	if anatomy.LeftWristJoint != "wrist_joint" {
		t.Errorf("LeftWristJoint = %q, want wrist_joint", anatomy.LeftWristJoint)
	}
	if anatomy.LeftHandJoint != "gripper_joint" {
		t.Errorf("LeftHandJoint = %q, want gripper_joint", anatomy.LeftHandJoint)
	}
	if anatomy.WaistJoint != "base_joint" {
		t.Errorf("WaistJoint = %q, want base_joint", anatomy.WaistJoint)
	}

	hand := anatomy.LeftHand
	if hand == nil {
		t.Fatal("left hand frame not derived")
	}
	for _, axis := range []mgl64.Vec3{hand.ThumbAxis, hand.ForeFingerAxis, hand.PalmNormal} {
		if math.Abs(axis.Len()-1) > tol {
			t.Errorf("hand axis %v is not unit length", axis)
		}
	}
	if math.Abs(hand.ThumbAxis.Dot(hand.ForeFingerAxis)) > tol {
		t.Error("hand axes are not orthogonal")
	}

	// The right side has no matching links; it degrades to a warning.
	if anatomy.RightHand != nil {
		t.Error("right hand frame set without r_wrist/r_gripper links")
	}
	if len(robot.Warnings()) == 0 {
		t.Error("missing roles produced no warnings")
	}
}

const planarRobot = `
<robot name="planar">
  <link name="base_link"/>
  <link name="slider"/>
  <joint name="jp" type="planar">
    <parent link="base_link"/>
    <child link="slider"/>
  </joint>
</robot>`

func TestBuildPlanarJointFatal(t *testing.T) {
	m := mustDecode(t, planarRobot)

	robot, err := NewParser().Build(context.Background(), m)
	if !errors.Is(err, errors.ErrCodePlanarUnsupported) {
		t.Fatalf("Build() error = %v, want code %s", err, errors.ErrCodePlanarUnsupported)
	}
	if robot != nil {
		t.Error("failed build exposed a partial robot")
	}
}

const threeArms = `
<robot name="tri">
  <link name="base_link"/>
  <link name="a"/>
  <link name="b"/>
  <link name="c"/>
  <joint name="jb" type="continuous">
    <axis xyz="0 1 0"/>
    <parent link="base_link"/>
    <child link="b"/>
  </joint>
  <joint name="ja" type="continuous">
    <axis xyz="0 1 0"/>
    <parent link="base_link"/>
    <child link="a"/>
  </joint>
  <joint name="jc" type="fixed">
    <parent link="base_link"/>
    <child link="c"/>
  </joint>
</robot>`

func TestBuildChildOrderFollowsDeclaration(t *testing.T) {
	m := mustDecode(t, threeArms)

	robot, err := NewParser().Build(context.Background(), m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var got []string
	for _, child := range robot.Root().Children() {
		got = append(got, child.Name())
	}
	want := []string{"jb", "ja", "jc"}
	if len(got) != len(want) {
		t.Fatalf("root children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %q, want %q (declaration order)", i, got[i], want[i])
		}
	}

	// Every document joint appears exactly once in the output.
	seen := map[string]int{}
	var walk func(j *JointNode)
	walk = func(j *JointNode) {
		seen[j.Name()]++
		for _, c := range j.Children() {
			walk(c)
		}
	}
	walk(robot.Root())
	for _, name := range []string{"base_joint", "ja", "jb", "jc"} {
		if seen[name] != 1 {
			t.Errorf("joint %q appears %d times in the tree", name, seen[name])
		}
	}
}

func TestBuildMissingInertialWarns(t *testing.T) {
	m := mustDecode(t, onePendulum)

	robot, err := NewParser().Build(context.Background(), m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	j1 := robot.Joint("j1")
	if j1.Body() == nil {
		t.Fatal("j1 has no body")
	}
	if j1.Body().Mass != 0 {
		t.Errorf("mass = %v, want 0 for a link without inertial data", j1.Body().Mass)
	}

	found := false
	for _, w := range robot.Warnings() {
		if w == `missing inertial information in link "arm"` {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings %v lack the missing-inertial notice", robot.Warnings())
	}
}

func TestBuildReusesParser(t *testing.T) {
	p := NewParser()
	m := mustDecode(t, onePendulum)

	first, err := p.Build(context.Background(), m)
	if err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	second, err := p.Build(context.Background(), m)
	if err != nil {
		t.Fatalf("second Build() error = %v", err)
	}

	if first.JointCount() != second.JointCount() {
		t.Errorf("joint counts differ across builds: %d vs %d",
			first.JointCount(), second.JointCount())
	}
	if first.BuildID() == second.BuildID() {
		t.Error("rebuild kept the previous build ID")
	}
	// The first result stays intact after the rebuild.
	if first.Joint("j1") == second.Joint("j1") {
		t.Error("rebuild aliased nodes of the previous result")
	}
}

func TestBuildInertialReexpression(t *testing.T) {
	const doc = `
<robot name="massy">
  <link name="base_link"/>
  <link name="arm">
    <inertial>
      <origin xyz="0 0 2"/>
      <mass value="1.5"/>
      <inertia ixx="1" ixy="0" ixz="0" iyy="2" iyz="0" izz="3"/>
    </inertial>
  </link>
  <joint name="j1" type="revolute">
    <axis xyz="0 0 1"/>
    <parent link="base_link"/>
    <child link="arm"/>
    <limit lower="-1" upper="1" velocity="1" effort="1"/>
  </joint>
</robot>`
	m := mustDecode(t, doc)

	robot, err := NewParser().Build(context.Background(), m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	body := robot.Joint("j1").Body()
	if body.Mass != 1.5 {
		t.Errorf("mass = %v, want 1.5", body.Mass)
	}
	// The Z axis becomes the canonical X under normalization, so the
	// center of mass moves from (0,0,2) to (2,0,0).
	if !vecApproxEqual(body.CenterOfMass, mgl64.Vec3{2, 0, 0}) {
		t.Errorf("com = %v, want (2, 0, 0)", body.CenterOfMass)
	}

	moments := body.PrincipalMoments()
	want := [3]float64{1, 2, 3}
	for i := range want {
		if math.Abs(moments[i]-want[i]) > 1e-9 {
			t.Errorf("principal moments = %v, want %v", moments, want)
		}
	}
}
