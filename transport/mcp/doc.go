// Package mcp provides a Model Context Protocol server for the tile pattern editor.
//
// The server is a thin proxy: every tool call is translated into a request
// against the REST API, so the HTTP server remains the single owner of
// session state.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - get_pattern, update_pattern: read and replace a session's shapes
//   - describe_tile, paint_tile, normalize_tile: tile layout and colour mapping
//   - list_tile_kinds, list_configs: discovery
//   - pattern_instructions: rules and worked examples
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp, handled with GetMCPServer().HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
