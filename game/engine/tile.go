package engine

import (
	"fmt"
	"sort"
)

// TileKind identifies a tile variant
type TileKind string

const (
	KindHex  TileKind = "hex"
	KindCube TileKind = "cube"
)

// Tile is a fixed arrangement of triangles with a declared rotational symmetry
// and a mapping between logical colour slots and per-triangle colours.
type Tile interface {
	Kind() TileKind
	TriangleType() TriangleType
	Triangles() []Triangle
	NumSlots() int

	// RotationAngles lists, ascending from 0, the angles in degrees at which the
	// tile's drawn appearance maps onto itself.
	RotationAngles() []int

	// MapColorsToTriangles expands per-slot colours to one colour per triangle.
	MapColorsToTriangles(colors TileColors) TileColors

	// MapColorsFromTriangles collapses per-triangle colours to one colour per slot.
	MapColorsFromTriangles(colors TileColors) TileColors
}

// tileConstructors is the dispatch table for every registered variant.
var tileConstructors = map[TileKind]func(TriangleType) (Tile, error){
	KindHex: func(t TriangleType) (Tile, error) {
		return NewHexTile(t)
	},
	KindCube: func(t TriangleType) (Tile, error) {
		return NewCubeTile(t)
	},
}

// NewTile builds a tile of the given kind for topology t
func NewTile(kind TileKind, t TriangleType) (Tile, error) {
	build, ok := tileConstructors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown tile kind %q", kind)
	}
	return build(t)
}

// Valid reports whether k is a registered tile kind
func (k TileKind) Valid() bool {
	_, ok := tileConstructors[k]
	return ok
}

// TileKinds returns the registered tile kinds in sorted order
func TileKinds() []TileKind {
	kinds := make([]TileKind, 0, len(tileConstructors))
	for k := range tileConstructors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// symmetry folds triangles onto slots. slots[i] lists the triangle indices of
// class i; slots[i][0] is the class representative.
type symmetry struct {
	order int
	slots [][]int
}

func (s symmetry) rotationAngles() []int {
	angles := make([]int, s.order)
	step := 360 / s.order
	for i := range angles {
		angles[i] = i * step
	}
	return angles
}

func (s symmetry) numTriangles() int {
	n := 0
	for _, members := range s.slots {
		n += len(members)
	}
	return n
}

// expand maps slot colours onto triangles. Slots missing from a short
// sequence produce "" and surplus slots are ignored.
func (s symmetry) expand(colors TileColors) TileColors {
	switch colors.Kind() {
	case ColorsAbsent:
		return colors
	case ColorsUniform:
		c, _ := colors.Uniform()
		return Sequence(repeat(c, s.numTriangles())...)
	case ColorsSequence:
		out := make([]Color, s.numTriangles())
		for slot, members := range s.slots {
			c := colors.At(slot)
			for _, tri := range members {
				out[tri] = c
			}
		}
		return Sequence(out...)
	}
	return Absent()
}

// collapse reads each slot from its representative triangle. Other members
// of the class are not compared against it.
func (s symmetry) collapse(colors TileColors) TileColors {
	switch colors.Kind() {
	case ColorsAbsent:
		return colors
	case ColorsUniform:
		c, _ := colors.Uniform()
		return Sequence(repeat(c, len(s.slots))...)
	case ColorsSequence:
		out := make([]Color, len(s.slots))
		for slot, members := range s.slots {
			out[slot] = colors.At(members[0])
		}
		return Sequence(out...)
	}
	return Absent()
}

func repeat(c Color, n int) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}
