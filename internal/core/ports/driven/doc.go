// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PageStore: Canonical page persistence and corpus enumeration
//
// # Optional Interfaces
//
//   - Notifier: Change fan-out for presence/refresh. Can be nil; edits
//     persist regardless of whether anyone is listening.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
