// Package resource retrieves robot-description resources by URI.
//
// # Overview
//
// Robot descriptions reference external resources - mesh files above all -
// through URI-like strings. This package resolves those references into
// byte buffers so that the model builder never performs I/O itself.
//
// Supported schemes:
//
//   - file:///abs/path and bare relative paths - local filesystem
//   - package://name/path - resolved against configured package roots,
//     mirroring the search behavior of robot-description workspaces
//   - http:// and https:// - fetched with retry and exponential backoff
//
// # Caching
//
// Remote retrievals can be wrapped with [NewCaching] and a [Cache]
// backend. Three backends are provided:
//
//   - [NewFileCache] - per-user on-disk cache for CLI usage
//   - [NewRedisCache] - shared cache for multi-instance deployments
//   - [NewNullCache] - caching disabled
//
// # Usage
//
//	r := resource.NewRetriever(resource.Config{
//	    PackageRoots: []string{"/opt/ros/share"},
//	})
//	data, err := r.Get(ctx, "package://romeo_description/meshes/torso.dae")
package resource
