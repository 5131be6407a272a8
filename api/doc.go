// Package api provides the HTTP REST surface of the arena.
//
// The api package implements:
//   - RESTful endpoints for match management and tile placement
//   - Move history, replay and scoreboard endpoints
//   - Configuration listing and creation
//   - Read-only archive endpoints backed by the SQLite store
//   - WebSocket upgrade handling for spectators
//   - Health and Prometheus metrics endpoints
//
// Endpoints:
//
// Match Management:
//   - POST /api/matches - Create a new match
//   - GET /api/matches - List matches (sort, order, limit)
//   - GET /api/matches/{id} - Get match metadata
//   - DELETE /api/matches/{id} - Delete a match
//
// Game Operations:
//   - GET /api/matches/{id}/state - Full match state
//   - POST /api/matches/{id}/moves - Place a tile
//   - POST /api/matches/{id}/replay - Replay a sequence of moves
//   - POST /api/matches/{id}/reset - Reset the board
//   - GET /api/matches/{id}/history - Move history with pagination
//   - GET /api/matches/{id}/scores - Current scoreboard
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a new configuration
//
// Archive:
//   - GET /api/archive/recent - Recently finished matches
//   - GET /api/archive/matches/{id} - One archived match with moves
//   - GET /api/archive/leaderboard - Per-player win/loss record
//   - GET /api/archive/rulesets - Aggregate stats per ruleset
//
// Operational:
//   - GET /healthz - Liveness probe
//   - GET /metrics - Prometheus metrics
//   - GET /ws?match={id} - WebSocket spectator feed
//
// Placement rejections are returned with HTTP 200 and success:false so
// an agent can read the reason and retry; only malformed requests get a
// 4xx status.
package api
