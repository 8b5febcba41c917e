// Package websocket provides WebSocket transport for the tile pattern editor.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Pattern broadcasting after every accepted update
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub owns all connections. Registration, unregistration and
// broadcasts are all handled on the hub goroutine started by Run, so the
// client maps are never touched from request handlers. Each client has a
// read pump and a write pump goroutine.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//
//	{"session_id": "ab12", "event": "pattern_updated", "pattern": {...}}
//
// Incoming messages are read only to keep the connection alive.
//
// Clients pick their session with the query parameter ?session=ab12.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastPattern(sessionID, snapshot)
package websocket
