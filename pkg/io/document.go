package io

import (
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/model"
)

// Document is the serializable view of a built robot model.
type Document struct {
	Name     string           `json:"name"`
	BuildID  string           `json:"build_id,omitempty"`
	Root     string           `json:"root"`
	Joints   []JointRecord    `json:"joints"`
	Geometry []GeometryRecord `json:"geometry,omitempty"`
	Anatomy  AnatomyRecord    `json:"anatomy"`
	Warnings []string         `json:"warnings,omitempty"`
}

// JointRecord flattens one joint node. Parent is empty for the root;
// Pose is the absolute 4x4 pose in column-major order.
type JointRecord struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Parent string      `json:"parent,omitempty"`
	Pose   [16]float64 `json:"pose"`
	DOF    []DOFRecord `json:"dof,omitempty"`
	Body   *BodyRecord `json:"body,omitempty"`
}

// DOFRecord describes one degree of freedom.
type DOFRecord struct {
	Bounded     bool    `json:"bounded"`
	Lower       float64 `json:"lower,omitempty"`
	Upper       float64 `json:"upper,omitempty"`
	MaxVelocity float64 `json:"max_velocity,omitempty"`
	MaxEffort   float64 `json:"max_effort,omitempty"`
}

// BodyRecord carries the rigid body attached to a joint.
type BodyRecord struct {
	Mass         float64    `json:"mass"`
	CenterOfMass [3]float64 `json:"center_of_mass"`
	Inertia      [9]float64 `json:"inertia"`
}

// GeometryRecord flattens one geometry attachment.
type GeometryRecord struct {
	Name     string      `json:"name"`
	Joint    string      `json:"joint"`
	Kind     string      `json:"kind"`
	Pose     [16]float64 `json:"pose"`
	Filename string      `json:"filename,omitempty"`
	Scale    [3]float64  `json:"scale,omitempty"`
	Radius   float64     `json:"radius,omitempty"`
	Length   float64     `json:"length,omitempty"`
	Size     [3]float64  `json:"size,omitempty"`
	P1       [3]float64  `json:"p1,omitempty"`
	P2       [3]float64  `json:"p2,omitempty"`
}

// AnatomyRecord carries the resolved role registry and derived frames.
type AnatomyRecord struct {
	WaistJoint      string      `json:"waist_joint,omitempty"`
	ChestJoint      string      `json:"chest_joint,omitempty"`
	LeftWristJoint  string      `json:"left_wrist_joint,omitempty"`
	RightWristJoint string      `json:"right_wrist_joint,omitempty"`
	LeftHandJoint   string      `json:"left_hand_joint,omitempty"`
	RightHandJoint  string      `json:"right_hand_joint,omitempty"`
	LeftAnkleJoint  string      `json:"left_ankle_joint,omitempty"`
	RightAnkleJoint string      `json:"right_ankle_joint,omitempty"`
	LeftFootJoint   string      `json:"left_foot_joint,omitempty"`
	RightFootJoint  string      `json:"right_foot_joint,omitempty"`
	GazeJoint       string      `json:"gaze_joint,omitempty"`
	LeftHand        *Hand       `json:"left_hand,omitempty"`
	RightHand       *Hand       `json:"right_hand,omitempty"`
	LeftFoot        *Foot       `json:"left_foot,omitempty"`
	RightFoot       *Foot       `json:"right_foot,omitempty"`
	GazeDirection   *[3]float64 `json:"gaze_direction,omitempty"`
	GazeOrigin      *[3]float64 `json:"gaze_origin,omitempty"`
}

// Hand is the derived local hand frame.
type Hand struct {
	Center         [3]float64 `json:"center"`
	ThumbAxis      [3]float64 `json:"thumb_axis"`
	ForeFingerAxis [3]float64 `json:"forefinger_axis"`
	PalmNormal     [3]float64 `json:"palm_normal"`
}

// Foot is the derived local foot frame.
type Foot struct {
	AnklePosition [3]float64 `json:"ankle_position"`
}

// FromRobot flattens a built robot into its serializable view.
func FromRobot(r *model.Robot) *Document {
	doc := &Document{
		Name:     r.Name(),
		BuildID:  r.BuildID(),
		Root:     r.Root().Name(),
		Warnings: r.Warnings(),
	}

	for _, j := range r.Joints() {
		rec := JointRecord{
			Name: j.Name(),
			Type: j.Type().String(),
			Pose: [16]float64(j.Pose()),
		}
		if p := j.Parent(); p != nil {
			rec.Parent = p.Name()
		}
		for _, d := range j.DOF() {
			rec.DOF = append(rec.DOF, DOFRecord{
				Bounded:     d.Bounded,
				Lower:       d.Lower,
				Upper:       d.Upper,
				MaxVelocity: d.MaxVelocity,
				MaxEffort:   d.MaxEffort,
			})
		}
		if b := j.Body(); b != nil {
			rec.Body = &BodyRecord{
				Mass:         b.Mass,
				CenterOfMass: [3]float64(b.CenterOfMass),
				Inertia:      [9]float64(b.Inertia),
			}
		}
		doc.Joints = append(doc.Joints, rec)
	}

	for _, g := range r.Geometry() {
		doc.Geometry = append(doc.Geometry, GeometryRecord{
			Name:     g.Name,
			Joint:    g.Joint,
			Kind:     g.Kind.String(),
			Pose:     [16]float64(g.Pose),
			Filename: g.Filename,
			Scale:    [3]float64(g.Scale),
			Radius:   g.Radius,
			Length:   g.Length,
			Size:     [3]float64(g.Size),
			P1:       [3]float64(g.P1),
			P2:       [3]float64(g.P2),
		})
	}

	a := r.Anatomy()
	doc.Anatomy = AnatomyRecord{
		WaistJoint:      a.WaistJoint,
		ChestJoint:      a.ChestJoint,
		LeftWristJoint:  a.LeftWristJoint,
		RightWristJoint: a.RightWristJoint,
		LeftHandJoint:   a.LeftHandJoint,
		RightHandJoint:  a.RightHandJoint,
		LeftAnkleJoint:  a.LeftAnkleJoint,
		RightAnkleJoint: a.RightAnkleJoint,
		LeftFootJoint:   a.LeftFootJoint,
		RightFootJoint:  a.RightFootJoint,
		GazeJoint:       a.GazeJoint,
	}
	if a.LeftHand != nil {
		doc.Anatomy.LeftHand = handRecord(a.LeftHand)
	}
	if a.RightHand != nil {
		doc.Anatomy.RightHand = handRecord(a.RightHand)
	}
	if a.LeftFoot != nil {
		doc.Anatomy.LeftFoot = &Foot{AnklePosition: [3]float64(a.LeftFoot.AnklePosition)}
	}
	if a.RightFoot != nil {
		doc.Anatomy.RightFoot = &Foot{AnklePosition: [3]float64(a.RightFoot.AnklePosition)}
	}
	if a.GazeJoint != "" {
		dir, origin := [3]float64(a.GazeDirection), [3]float64(a.GazeOrigin)
		doc.Anatomy.GazeDirection = &dir
		doc.Anatomy.GazeOrigin = &origin
	}

	return doc
}

func handRecord(h *model.HandFrame) *Hand {
	return &Hand{
		Center:         [3]float64(h.Center),
		ThumbAxis:      [3]float64(h.ThumbAxis),
		ForeFingerAxis: [3]float64(h.ForeFingerAxis),
		PalmNormal:     [3]float64(h.PalmNormal),
	}
}
