// Package session provides match session management for the arena server.
//
// The session package implements:
//   - Thread-safe match storage and retrieval
//   - Unique match ID generation
//   - Match lifecycle management
//   - Concurrent access control
//   - Match cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all match operations.
// Each match holds its own engine instance plus metadata like creation
// time and last access time.
//
// Match Identifiers:
//
// Matches use 4-character hex IDs for easy reference. Lookups are
// case-insensitive. The manager generates collision-resistant IDs using
// cryptographic randomness when the caller does not supply one.
//
// Persistence:
//
// When constructed with NewManagerWithPersistence, every live match is
// mirrored to a JSON file under the matches directory. Get falls back to
// the persisted file when a match is not in memory, and corrupt files are
// skipped with a warning during startup loads.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new match
//	match, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve an existing match
//	match, err = manager.Get(matchID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active matches
//	matches := manager.List()
//
// Cleanup:
//
// Matches can be explicitly deleted or pruned by age through
// CleanupExpired. A background filesystem sync can additionally drop
// in-memory matches whose files were deleted out of band.
package session
