package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

func TestCreateRotationJointBounds(t *testing.T) {
	reg := newJointRegistry()

	limits := &urdf.Limits{Lower: -1, Upper: 1, Velocity: 2, Effort: 5}
	j, err := reg.createRotationJoint("elbow", mgl64.Ident4(), limits)
	if err != nil {
		t.Fatalf("createRotationJoint() error = %v", err)
	}

	dof := j.DOF()
	if len(dof) != 1 {
		t.Fatalf("DOF count = %d, want 1", len(dof))
	}
	got := dof[0]
	if !got.Bounded || got.Lower != -1 || got.Upper != 1 {
		t.Errorf("position bounds = %+v, want bounded [-1, 1]", got)
	}
	if got.MaxVelocity != 2 || got.MaxEffort != 5 {
		t.Errorf("velocity/effort = %v/%v, want 2/5", got.MaxVelocity, got.MaxEffort)
	}
}

func TestCreateRotationJointWithoutLimits(t *testing.T) {
	reg := newJointRegistry()

	j, err := reg.createRotationJoint("elbow", mgl64.Ident4(), nil)
	if err != nil {
		t.Fatalf("createRotationJoint() error = %v", err)
	}
	if dof := j.DOF()[0]; dof.Bounded || !math.IsInf(dof.Upper, 1) {
		t.Errorf("joint without limits has bounds %+v", dof)
	}
}

func TestCreateContinuousJointUnbounded(t *testing.T) {
	reg := newJointRegistry()

	j, err := reg.createContinuousJoint("wheel", mgl64.Ident4())
	if err != nil {
		t.Fatalf("createContinuousJoint() error = %v", err)
	}
	if dof := j.DOF()[0]; dof.Bounded {
		t.Errorf("continuous joint is bounded: %+v", dof)
	}
}

func TestCreateFreeFlyerJointDOF(t *testing.T) {
	reg := newJointRegistry()

	j, err := reg.createFreeFlyerJoint("base", mgl64.Ident4())
	if err != nil {
		t.Fatalf("createFreeFlyerJoint() error = %v", err)
	}
	if len(j.DOF()) != 6 {
		t.Fatalf("DOF count = %d, want 6", len(j.DOF()))
	}
	for i, dof := range j.DOF() {
		if dof.Bounded {
			t.Errorf("freedom %d is bounded at creation time", i)
		}
	}
}

func TestCreateAnchorJointNoDOF(t *testing.T) {
	reg := newJointRegistry()

	j, err := reg.createAnchorJoint("mount", mgl64.Ident4())
	if err != nil {
		t.Fatalf("createAnchorJoint() error = %v", err)
	}
	if len(j.DOF()) != 0 {
		t.Errorf("anchor joint carries %d DOF, want 0", len(j.DOF()))
	}
}

func TestDuplicateNameRejection(t *testing.T) {
	reg := newJointRegistry()

	limits := &urdf.Limits{Lower: -1, Upper: 1}
	first, err := reg.createRotationJoint("shoulder", mgl64.Ident4(), limits)
	if err != nil {
		t.Fatalf("first creation error = %v", err)
	}

	_, err = reg.createTranslationJoint("shoulder", mgl64.Translate3D(9, 9, 9), nil)
	if !errors.Is(err, errors.ErrCodeDuplicateJoint) {
		t.Fatalf("duplicate creation error = %v, want code %s", err, errors.ErrCodeDuplicateJoint)
	}

	// The first registered node stays untouched.
	got := reg.find("shoulder")
	if got != first {
		t.Error("duplicate creation replaced the registered node")
	}
	if got.Type() != Rotation || !got.DOF()[0].Bounded {
		t.Errorf("registered node mutated: type %v, dof %+v", got.Type(), got.DOF()[0])
	}
	if len(reg.order) != 1 {
		t.Errorf("registry order has %d entries, want 1", len(reg.order))
	}
}

func TestSetFreeFlyerBounds(t *testing.T) {
	reg := newJointRegistry()
	root, _ := reg.createFreeFlyerJoint("base", mgl64.Ident4())

	setFreeFlyerBounds(root)

	dofs := root.DOF()
	for i := 0; i < 3; i++ {
		if dofs[i].Bounded {
			t.Errorf("translation freedom %d is bounded", i)
		}
	}
	for i := 3; i < 5; i++ {
		if !dofs[i].Bounded || dofs[i].Lower != -math.Pi/6 || dofs[i].Upper != math.Pi/6 {
			t.Errorf("rotation freedom %d = %+v, want bounded to +-pi/6", i, dofs[i])
		}
	}
	if dofs[5].Bounded {
		t.Error("yaw freedom is bounded")
	}
}
