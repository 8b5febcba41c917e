// Package api provides HTTP REST API handlers for the tile pattern editor.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session from a pattern definition
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Pattern:
//   - GET /api/sessions/{id}/pattern - Current shapes and derived properties
//   - PUT /api/sessions/{id}/pattern - Replace shapes: {"shapes": [...]}
//
// Tiles:
//   - GET /api/tiles - Registered tile kinds and triangle types
//   - GET /api/sessions/{id}/tiles/{kind} - Tile layout and rotation angles
//   - POST /api/sessions/{id}/tiles/{kind}/paint - Slot colours to triangle colours
//   - POST /api/sessions/{id}/tiles/{kind}/normalize - Triangle colours to slot colours
//
// Configuration:
//   - GET /api/configs - List pattern definitions
//   - POST /api/configs - Save a pattern definition
//   - GET /api/configs/{name} - Get a pattern definition
//
// Colours are sent as {"colors": c} where c is null (absent), a string
// (one colour for every position) or an array (one colour per position).
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. Malformed bodies, invalid
// shapes and unknown tile kinds are 400; unknown sessions and definitions
// are 404.
//
// Usage:
//
//	server := api.NewServer(patternService, hub)
//	http.ListenAndServe(":8080", server)
package api
