package engine

// cubeSymmetry pairs adjacent triangles into the three visible faces of a
// cube: slot i covers triangles 2i and 2i+1, with 2i as representative.
var cubeSymmetry = symmetry{
	order: 3,
	slots: [][]int{{0, 1}, {2, 3}, {4, 5}},
}

// CubeTile is a hex tile drawn as an isometric cube with 3-fold symmetry
type CubeTile struct {
	HexTile
}

// NewCubeTile lays out a cube tile for topology t
func NewCubeTile(t TriangleType) (*CubeTile, error) {
	hex, err := NewHexTile(t)
	if err != nil {
		return nil, err
	}
	return &CubeTile{HexTile: *hex}, nil
}

// Kind returns KindCube
func (c *CubeTile) Kind() TileKind { return KindCube }

// NumSlots returns 3
func (c *CubeTile) NumSlots() int { return len(cubeSymmetry.slots) }

// RotationAngles returns [0 120 240]
func (c *CubeTile) RotationAngles() []int { return cubeSymmetry.rotationAngles() }

// MapColorsToTriangles maps [a b d] to [a a b b d d]
func (c *CubeTile) MapColorsToTriangles(colors TileColors) TileColors {
	return cubeSymmetry.expand(colors)
}

// MapColorsFromTriangles maps [t0 .. t5] to [t0 t2 t4]
func (c *CubeTile) MapColorsFromTriangles(colors TileColors) TileColors {
	return cubeSymmetry.collapse(colors)
}
