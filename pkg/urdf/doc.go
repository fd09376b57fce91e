// Package urdf decodes URDF robot-description documents into an immutable
// link/joint graph.
//
// # Overview
//
// A URDF document declares rigid links connected by typed joints. This
// package parses the XML grammar and lifts it into a [Model]: a map-backed
// graph with name-keyed lookups, a single root link, and declared-order
// traversal of joints and children. The Model is the input to the kinematic
// tree builder in [pkg/model]; it carries no derived state of its own.
//
// # Usage
//
// Decode a document and walk its structure:
//
//	m, err := urdf.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root, _ := m.Link(m.RootLink())
//	for _, name := range root.ChildJoints {
//	    j, _ := m.Joint(name)
//	    fmt.Println(j.Name, j.Kind)
//	}
//
// # Validation
//
// [Decode] validates structural constraints before returning:
//
//   - Link and joint names are unique
//   - Every joint references existing parent and child links
//   - Exactly one link has no parent joint (the root)
//   - The graph is acyclic (each link has at most one parent joint)
//
// Violations are reported as structured errors from [pkg/errors] with the
// INVALID_DOCUMENT code wrapping a package sentinel error.
//
// # Immutability
//
// The returned Model and everything reachable from it must be treated as
// read-only. Accessors return copies of slices where mutation by the caller
// would corrupt the graph.
//
// [pkg/model]: github.com/florent-lamiraux/hpp-model-urdf/pkg/model
// [pkg/errors]: github.com/florent-lamiraux/hpp-model-urdf/pkg/errors
package urdf
