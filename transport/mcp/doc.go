// Package mcp provides the Model Context Protocol surface of the arena.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for match operations
//   - A thin proxy that forwards every tool call to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - match_state: Get current match state with board rendering
//   - place_tile: Place one tile at a 0-based row,col position
//   - replay_moves: Re-apply a recorded placement sequence
//   - legal_moves: List every open cell for the match
//   - reset_match: Reset the board to empty
//   - match_history: Retrieve placement history with pagination
//   - scoreboard: Current standing of every seat
//   - create_match: Create new match with config selection
//   - get_match: Get specific match details
//   - list_matches: List all active matches
//   - list_configs: List available game configurations
//   - game_instructions: Full rules and agent strategy notes
//   - describe_cell: Inspect one cell before committing to a placement
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// The client never holds match state of its own. Every tool call is
// translated into a REST request against the API server, so stdio and
// HTTP clients always observe the same matches.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play matches
//   - Develop and test placement strategies
//   - Analyze board states and make decisions
//   - Manage multiple concurrent matches
//   - Learn from placement history
package mcp
