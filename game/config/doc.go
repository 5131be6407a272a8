// Package config provides match configuration management for the arena server.
//
// The config package handles:
//   - Loading match configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Match configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid dimensions (rows, cols)
//   - The ruleset deciding termination and scoring ("connected", "inarow")
//   - Seats: player names and single-character board symbols
//   - Message templates for turn prompts, victory, and draws
//
// Available Configurations:
//
// The repository ships several ready-made configurations:
//   - classic: the 5x5 connected-components duel
//   - blitz: a 4x4 connected variant for fast matches
//   - tictactoe: 3x3 three-in-a-row
//   - gomoku: 9x9 five-in-a-row
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific configuration
//	gameConfig, err := manager.LoadConfig("classic")
//
//	// Get the default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations go through engine.ValidateGameConfig before use:
// grid bounds, seat count and symbol uniqueness, ruleset existence, and
// ruleset-specific fields such as win_length.
package config
