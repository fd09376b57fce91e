package urdf

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
)

const sampleRobot = `<?xml version="1.0"?>
<robot name="sample">
  <link name="base_link">
    <inertial>
      <origin xyz="0 0 0.1"/>
      <mass value="10"/>
      <inertia ixx="1" ixy="0" ixz="0" iyy="2" iyz="0" izz="3"/>
    </inertial>
  </link>
  <link name="arm">
    <visual>
      <origin xyz="0 0 0.25" rpy="0 0 0"/>
      <geometry><cylinder radius="0.05" length="0.5"/></geometry>
    </visual>
    <collision>
      <origin xyz="0 0 0.25"/>
      <geometry><cylinder radius="0.05" length="0.5"/></geometry>
    </collision>
  </link>
  <link name="hand">
    <visual>
      <geometry><mesh filename="package://sample/meshes/hand.dae"/></geometry>
    </visual>
    <collision>
      <geometry><mesh filename="package://sample/meshes/hand.dae"/></geometry>
    </collision>
  </link>
  <joint name="shoulder" type="revolute">
    <origin xyz="0 0 0.5" rpy="0 0 1.5707963267948966"/>
    <parent link="base_link"/>
    <child link="arm"/>
    <axis xyz="0 0 1"/>
    <limit lower="-1.5" upper="1.5" velocity="2" effort="50"/>
  </joint>
  <joint name="wrist" type="fixed">
    <origin xyz="0 0 0.5"/>
    <parent link="arm"/>
    <child link="hand"/>
  </joint>
</robot>`

func TestDecode(t *testing.T) {
	m, err := Decode([]byte(sampleRobot))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if m.Name() != "sample" {
		t.Errorf("Name() = %q, want %q", m.Name(), "sample")
	}
	if m.RootLink() != "base_link" {
		t.Errorf("RootLink() = %q, want %q", m.RootLink(), "base_link")
	}
	if m.LinkCount() != 3 || m.JointCount() != 2 {
		t.Errorf("counts = (%d links, %d joints), want (3, 2)", m.LinkCount(), m.JointCount())
	}

	shoulder, ok := m.Joint("shoulder")
	if !ok {
		t.Fatal("joint shoulder not found")
	}
	if shoulder.Kind != KindRevolute {
		t.Errorf("shoulder.Kind = %v, want revolute", shoulder.Kind)
	}
	if got := shoulder.Axis; got != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("shoulder.Axis = %v, want (0,0,1)", got)
	}
	if shoulder.Limits == nil {
		t.Fatal("shoulder.Limits = nil")
	}
	if shoulder.Limits.Lower != -1.5 || shoulder.Limits.Upper != 1.5 ||
		shoulder.Limits.Velocity != 2 || shoulder.Limits.Effort != 50 {
		t.Errorf("shoulder.Limits = %+v", shoulder.Limits)
	}

	// rpy="0 0 pi/2" rotates X onto Y.
	rotated := shoulder.Origin.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
	if !rotated.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("origin rotation maps X to %v, want (0,1,0)", rotated)
	}

	base, _ := m.Link("base_link")
	if base.Inertial == nil {
		t.Fatal("base_link.Inertial = nil")
	}
	if base.Inertial.Mass != 10 {
		t.Errorf("mass = %v, want 10", base.Inertial.Mass)
	}
	if got := base.ChildJoints; len(got) != 1 || got[0] != "shoulder" {
		t.Errorf("base_link.ChildJoints = %v, want [shoulder]", got)
	}

	arm, _ := m.Link("arm")
	if arm.ParentJoint != "shoulder" {
		t.Errorf("arm.ParentJoint = %q, want shoulder", arm.ParentJoint)
	}
	if arm.Visual == nil || arm.Visual.Geometry.Type != GeometryCylinder {
		t.Error("arm visual geometry is not a cylinder")
	}
	if arm.Visual.Geometry.Radius != 0.05 || arm.Visual.Geometry.Length != 0.5 {
		t.Errorf("cylinder dims = (%v, %v), want (0.05, 0.5)",
			arm.Visual.Geometry.Radius, arm.Visual.Geometry.Length)
	}

	hand, _ := m.Link("hand")
	if hand.Visual == nil || hand.Visual.Geometry.Type != GeometryMesh {
		t.Fatal("hand visual geometry is not a mesh")
	}
	if hand.Visual.Geometry.Filename != "package://sample/meshes/hand.dae" {
		t.Errorf("mesh filename = %q", hand.Visual.Geometry.Filename)
	}
	if hand.Visual.Geometry.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("default mesh scale = %v, want (1,1,1)", hand.Visual.Geometry.Scale)
	}
}

func TestDecodeDefaults(t *testing.T) {
	doc := `<robot name="min">
	  <link name="a"/>
	  <link name="b"/>
	  <joint name="j" type="continuous">
	    <parent link="a"/>
	    <child link="b"/>
	  </joint>
	</robot>`

	m, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	j, _ := m.Joint("j")
	if j.Axis != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("default axis = %v, want (1,0,0)", j.Axis)
	}
	if j.Origin.Position != (mgl64.Vec3{}) {
		t.Errorf("default origin position = %v, want zero", j.Origin.Position)
	}
	if !j.Origin.Rotation.ApproxEqualThreshold(mgl64.QuatIdent(), 1e-12) {
		t.Errorf("default origin rotation = %v, want identity", j.Origin.Rotation)
	}
	if j.Limits != nil {
		t.Error("continuous joint without limit element has non-nil Limits")
	}
}

func TestDecodeStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "DuplicateLink",
			doc: `<robot name="r">
			  <link name="a"/><link name="a"/>
			</robot>`,
			wantErr: ErrDuplicateLink,
		},
		{
			name: "DuplicateJoint",
			doc: `<robot name="r">
			  <link name="a"/><link name="b"/><link name="c"/>
			  <joint name="j" type="fixed"><parent link="a"/><child link="b"/></joint>
			  <joint name="j" type="fixed"><parent link="a"/><child link="c"/></joint>
			</robot>`,
			wantErr: ErrDuplicateJoint,
		},
		{
			name: "UnknownParent",
			doc: `<robot name="r">
			  <link name="a"/><link name="b"/>
			  <joint name="j" type="fixed"><parent link="nope"/><child link="b"/></joint>
			</robot>`,
			wantErr: ErrUnknownParentLink,
		},
		{
			name: "UnknownChild",
			doc: `<robot name="r">
			  <link name="a"/><link name="b"/>
			  <joint name="j" type="fixed"><parent link="a"/><child link="nope"/></joint>
			</robot>`,
			wantErr: ErrUnknownChildLink,
		},
		{
			name: "MultipleParents",
			doc: `<robot name="r">
			  <link name="a"/><link name="b"/><link name="c"/>
			  <joint name="j1" type="fixed"><parent link="a"/><child link="c"/></joint>
			  <joint name="j2" type="fixed"><parent link="b"/><child link="c"/></joint>
			</robot>`,
			wantErr: ErrMultipleParents,
		},
		{
			name: "MultipleRoots",
			doc: `<robot name="r">
			  <link name="a"/><link name="b"/>
			</robot>`,
			wantErr: ErrMultipleRoots,
		},
		{
			// A detached two-link loop: each link in the loop has exactly
			// one parent, so only cycle detection can reject it.
			name: "Cycle",
			doc: `<robot name="r">
			  <link name="root"/><link name="a"/><link name="b"/>
			  <joint name="j1" type="fixed"><parent link="a"/><child link="b"/></joint>
			  <joint name="j2" type="fixed"><parent link="b"/><child link="a"/></joint>
			</robot>`,
			wantErr: ErrGraphHasCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("code = %q, want INVALID_DOCUMENT", errors.GetCode(err))
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeUnknownJointKind(t *testing.T) {
	doc := `<robot name="r">
	  <link name="a"/><link name="b"/>
	  <joint name="j" type="gearbox"><parent link="a"/><child link="b"/></joint>
	</robot>`

	m, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	j, _ := m.Joint("j")
	if j.Kind != KindUnknown {
		t.Errorf("Kind = %v, want unknown", j.Kind)
	}
}

func TestDecodeMalformedXML(t *testing.T) {
	_, err := Decode([]byte("<robot name='r'><link"))
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("code = %q, want INVALID_DOCUMENT", errors.GetCode(err))
	}
}

func TestInertialTensorSymmetry(t *testing.T) {
	in := Inertial{IXX: 1, IXY: 0.1, IXZ: 0.2, IYY: 2, IYZ: 0.3, IZZ: 3}
	tensor := in.Tensor()
	tr := tensor.Transpose()
	for i := range tensor {
		if math.Abs(tensor[i]-tr[i]) > 1e-15 {
			t.Fatalf("tensor not symmetric: %v", tensor)
		}
	}
}
