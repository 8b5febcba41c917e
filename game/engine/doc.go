// Package engine provides the grid geometry for the triangle tile pattern game.
//
// The engine package implements:
//   - Triangle cells and the tessellation topologies they live in
//   - Tiles that fold triangles onto logical colour slots by rotational symmetry
//   - Patterns: ordered tile shapes partitioned into colour groups
//   - Editable patterns that replace their shapes atomically
//
// Core Types:
//
// TriangleType fixes the topology of a Pattern for its whole lifetime. Tile is the
// capability contract shared by HexTile and CubeTile; variants are looked up through
// NewTile so that every topology is registered in one table. TileColors is the tagged
// union (Uniform, Sequence, Absent) the mapping functions operate on.
//
// Usage:
//
//	p := engine.NewEditablePattern(engine.UpDown)
//	err := p.UpdatePattern([]engine.TileShape{
//		{{{X: 0, Y: 0}, {X: 0, Y: 1}}, {{X: 1, Y: 0}}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tile, _ := engine.NewTile(engine.KindCube, engine.UpDown)
//	colors := tile.MapColorsToTriangles(engine.Sequence("a", "b", "d"))
//	// colors: [a a b b d d]
//
// Colour Slots:
//
// A tile exposes one logical slot per symmetry class of triangles. Expanding slots
// onto triangles copies each slot to every member of its class; collapsing reads only
// the class's representative triangle, so divergent partners are tolerated.
package engine
