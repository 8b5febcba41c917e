// Package service provides the business logic layer for the tile pattern game.
//
// The service package implements:
//   - Multi-session pattern editing
//   - Pattern definition loading from the config library
//   - Atomic pattern updates with before/after snapshots
//   - Tile colour mapping for renderers (paint and normalize)
//
// Core Interfaces:
//
// PatternService is the main service interface providing high-level editor
// operations. SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages pattern definition loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the geometry engine. Each session owns exactly one engine.EditablePattern and
// is its only writer; the service serializes updates so every caller sees the
// previous and current pattern of its own update.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	patternService := service.NewPatternService(sessionMgr, configMgr)
//
//	info, err := patternService.CreateSession(ctx, "cubes")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := patternService.PaintTile(ctx, info.ID, engine.KindCube,
//		engine.Sequence("red", "green", "blue"))
//
// Colours:
//
// Paint results carry the mapped colour sequence and, for every colour that is a
// known CSS name or a hex literal, its #rrggbb form.
package service
