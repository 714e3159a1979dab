// Package memory provides in-process implementations of the driven ports.
//
// The document store backs the demo mode and serves as the reference
// fake in tests. The config store is used by tests and by --demo runs
// that must not touch the user's config file.
package memory
