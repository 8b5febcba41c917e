// Package session provides session management for the tile pattern editor.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short random session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Each session owns one engine.EditablePattern built from a pattern
// definition. Sessions live in memory only; they are gone when the process
// exits.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
package session
