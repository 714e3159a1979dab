// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Lists, deletes and reloads an owner's documents
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are discovered on the DocumentStore with a type assertion.
// Services degrade gracefully when a backend lacks them:
//
//   - LanguageStore: Reads the owner's stored language
//   - ContentStore: Streams a document's bytes
//   - DocumentImporter: Adds local files to the store
//
// IdentityVerifier may be nil; owner ids then come from configuration only.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
