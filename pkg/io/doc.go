// Package io provides JSON export and import for built robot models.
//
// # Overview
//
// The JSON format flattens the kinematic tree into parent-linked joint
// records plus the geometry attachments, anatomy registry and build
// warnings. It is designed for:
//
//   - Inspection of a built model without re-parsing the description
//   - Integration with external visualization and planning tools
//   - Serving models over HTTP (see the serve command)
//
// # Format
//
//	{
//	  "name": "pendulum",
//	  "root": "base_joint",
//	  "joints": [
//	    {"name": "base_joint", "type": "freeflyer", "pose": [...16 values...], "dof": [...]},
//	    {"name": "j1", "type": "rotation", "parent": "base_joint", ...}
//	  ],
//	  "geometry": [...],
//	  "anatomy": {...},
//	  "warnings": [...]
//	}
//
// Poses are 4x4 homogeneous matrices in column-major order, matching the
// in-memory representation.
//
// # Import
//
// [ReadJSON] and [ImportJSON] validate the document on load: joint names
// must be unique, every parent reference must resolve, and exactly one
// joint must be the root. The returned [Document] is a plain data view;
// it does not rebuild engine state.
package io
