// Package domain defines the core business entities for Garsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DeviceProfile: The expected identity of the mounted watch
//   - MirrorStats: Outcome counters for one mirror pass
//   - SyncRun: A recorded sync attempt with its terminal status
//   - Settings: User-configurable paths and tool locations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
