// Package engine provides the core rules logic for the tile arena games.
//
// The engine package implements the game mechanics including:
//   - Grid state, tile placement, and turn order
//   - Pluggable rulesets deciding when a match ends and who wins
//   - Connected-component and line scanning over the board
//   - Match state management and persistence
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for match operations,
// implemented by GameEngine. MatchState represents the current state of
// one match, while GameConfig defines the grid, seats, and ruleset loaded
// from JSON files. Rulesets implement the Rules interface and register
// themselves by name.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place a tile for seat 1
//	err = gameEngine.Place(1, engine.Position{Row: 0, Col: 3})
//	state := gameEngine.GetState()
//
// Game Rules:
//
// Players alternate placing tiles on empty cells of a rectangular grid.
// Placed tiles never move. Under the "connected" ruleset the match runs
// until the board is full and the seat holding the largest orthogonally
// connected component wins, with ties ending in a draw. Under the
// "inarow" ruleset the first seat to line up win_length tiles wins.
package engine
