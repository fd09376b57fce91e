// Package model builds an in-memory kinematic tree from a decoded robot
// description.
//
// The input is an immutable [urdf.Model]; the output is an immutable
// [Robot]: a tree of typed joint nodes rooted at a synthesized 6-DOF
// floating base, with per-joint bodies (mass, center of mass, inertia),
// resolved geometry attachments, and an anatomy registry binding semantic
// roles (wrist, ankle, gaze) to joints by naming convention.
//
// # Pipeline
//
// A build runs once per document, single-threaded, in a fixed order:
//
//  1. Resolve anatomy role names against the link table.
//  2. Create one typed joint node per document joint, with its absolute
//     pose composed up the parent chain and its motion axis normalized
//     into the canonical X-aligned frame.
//  3. Connect the nodes into a tree, resolving through links that carry
//     no joint of their own.
//  4. Attach bodies, re-expressing inertial data in the normalized
//     frames, and resolve visual/collision geometry pairs to placed
//     primitives.
//  5. Derive end-effector frames (hands, feet, gaze) from the initial
//     joint poses, and clamp the floating base's roll/pitch freedoms.
//
// Structural defects (duplicate joint names, planar joints, dangling
// references, cycles) abort the build with a coded error. Recoverable
// gaps (missing inertial data, unresolved roles) are collected as
// warnings on the result instead.
//
// # Usage
//
//	doc, err := urdf.Decode(data)
//	if err != nil { ... }
//
//	robot, err := model.NewParser().Build(ctx, doc)
//	if err != nil { ... }
//
//	for _, j := range robot.Joints() {
//	    fmt.Println(j.Name(), j.DOF())
//	}
//
// A single [Parser] may be reused; its scratch state is reset on every
// build. Parsers are not safe for concurrent use - callers wanting
// parallel builds use one Parser per goroutine.
package model
