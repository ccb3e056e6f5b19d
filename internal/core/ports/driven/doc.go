// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Mounter: Attaches and detaches the device over MTP
//   - Mirror: Additively copies the device subtree to local storage
//   - DeviceVerifier: Confirms device identity via marker files
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SyncHistoryStore: Past-run persistence. Without it, sync still works
//     but `garsync history` has nothing to show.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
