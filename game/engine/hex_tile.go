package engine

// hexLayout lists the tile-local positions of a hex tile's triangles for the
// UpDown topology, clockwise from the top-left triangle. The shared centre
// vertex sits below (1,0) and above (1,1).
var hexLayout = []Coord{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 2, Y: 0},
	{X: 2, Y: 1},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
}

// hexSymmetry is the identity folding: one slot per triangle.
var hexSymmetry = symmetry{
	order: 6,
	slots: [][]int{{0}, {1}, {2}, {3}, {4}, {5}},
}

// HexTile is six triangles arranged around a common centre
type HexTile struct {
	triangleType TriangleType
	triangles    []Triangle
}

// NewHexTile lays out a hex tile for topology t
func NewHexTile(t TriangleType) (*HexTile, error) {
	triangles := make([]Triangle, 0, len(hexLayout))
	for _, pos := range hexLayout {
		if t == LeftRight {
			pos = Coord{X: pos.Y, Y: pos.X}
		}
		tri, err := NewTriangle(t, pos, t.OrientationAt(pos))
		if err != nil {
			return nil, err
		}
		triangles = append(triangles, tri)
	}

	return &HexTile{triangleType: t, triangles: triangles}, nil
}

// Kind returns KindHex
func (h *HexTile) Kind() TileKind { return KindHex }

// TriangleType returns the tile's topology
func (h *HexTile) TriangleType() TriangleType { return h.triangleType }

// Triangles returns a copy of the tile's triangles in slot order
func (h *HexTile) Triangles() []Triangle {
	out := make([]Triangle, len(h.triangles))
	copy(out, h.triangles)
	return out
}

// NumSlots returns 6
func (h *HexTile) NumSlots() int { return len(hexSymmetry.slots) }

// RotationAngles returns multiples of 60 degrees
func (h *HexTile) RotationAngles() []int { return hexSymmetry.rotationAngles() }

// MapColorsToTriangles copies slot i to triangle i
func (h *HexTile) MapColorsToTriangles(colors TileColors) TileColors {
	return hexSymmetry.expand(colors)
}

// MapColorsFromTriangles copies triangle i to slot i
func (h *HexTile) MapColorsFromTriangles(colors TileColors) TileColors {
	return hexSymmetry.collapse(colors)
}
