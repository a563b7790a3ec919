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
//   - IntakeAPI: Remote classification, search, chat and document service
//   - RecentStore: Durable recent-document history
//   - ConfigStore: Application configuration
//   - Notifier: Transient user notifications
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FileDescriber: Builds a StagedFile from a local path. Without it the
//     caller must supply size and media type itself.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
