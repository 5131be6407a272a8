// Package service provides the business logic layer for the arena server.
//
// The service package implements:
//   - Multi-match session management
//   - Configuration management and loading
//   - Placement processing and rejection reporting
//   - Move replay and scoreboard computation
//   - Finished-match archiving and live-feed notification
//
// Core Interfaces:
//
// MatchService is the main service interface providing high-level match operations.
// SessionManager handles match creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
// Archiver records finished matches; Notifier pushes state to spectators.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing match isolation, configuration management, and
// business logic orchestration. Each match holds its own game engine instance
// with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	matchService := service.NewMatchService(sessionMgr, configMgr, nil, nil)
//
//	// Create a new match
//	matchInfo, err := matchService.CreateMatch(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place tiles
//	result, err := matchService.Place(ctx, matchInfo.ID, "*", engine.Position{Row: 2, Col: 2}, false)
//
// Match Management:
//
// Matches are identified by unique 4-character IDs and maintain independent
// board state. Multiple matches can run concurrently with different
// configurations. Matches track creation time, last access time, and move
// history for analytics and replay.
package service
