// Package websocket provides the live spectator feed for matches.
//
// The websocket package implements:
//   - Match-aware WebSocket connections
//   - Automatic state broadcasting after every accepted placement
//   - Connection lifecycle management
//   - Ping/pong keepalive handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. All bookkeeping
// runs on the hub's Run goroutine; producers only write to channels.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values carrying the match ID,
// an event name ("state_update" for board changes), and the full MatchState.
// Incoming messages from spectators are ignored; the feed is one-way.
//
// Match Integration:
//
// Clients specify the match they want to watch via query parameter
// (?match=ab12) when establishing the connection. State updates are
// broadcast only to clients watching the same match.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// the hub satisfies service.Notifier
//	svc := service.NewMatchService(sessions, configs, archive, hub)
//
// Connection Lifecycle:
//
// 1. Client connects with a match ID
// 2. Connection registered with hub
// 3. Client receives a state update after every accepted placement
// 4. Disconnection triggers cleanup
package websocket
