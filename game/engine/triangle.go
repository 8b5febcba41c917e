package engine

import (
	"encoding/json"
	"fmt"
)

// TriangleType represents a tessellation topology
type TriangleType string

const (
	// UpDown arranges triangles in horizontal rows pointing up or down.
	UpDown TriangleType = "up_down"
	// LeftRight arranges triangles in vertical columns pointing left or right.
	LeftRight TriangleType = "left_right"
)

// TriangleTypes lists every supported topology
var TriangleTypes = []TriangleType{UpDown, LeftRight}

// Valid reports whether t is a known topology
func (t TriangleType) Valid() bool {
	switch t {
	case UpDown, LeftRight:
		return true
	}
	return false
}

// Orientations returns the orientations allowed for t, even-parity orientation first
func (t TriangleType) Orientations() []Orientation {
	switch t {
	case UpDown:
		return []Orientation{Up, Down}
	case LeftRight:
		return []Orientation{Right, Left}
	}
	return nil
}

// Allows reports whether o is a valid orientation for t
func (t TriangleType) Allows(o Orientation) bool {
	for _, allowed := range t.Orientations() {
		if allowed == o {
			return true
		}
	}
	return false
}

// OrientationAt returns the orientation the lattice assigns to c.
// Even x+y points Up (UpDown) or Right (LeftRight).
func (t TriangleType) OrientationAt(c Coord) Orientation {
	allowed := t.Orientations()
	if len(allowed) == 0 {
		return ""
	}
	if (c.X+c.Y)%2 == 0 {
		return allowed[0]
	}
	return allowed[1]
}

// ParseTriangleType converts a string to a TriangleType
func ParseTriangleType(s string) (TriangleType, error) {
	t := TriangleType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown triangle type %q", s)
	}
	return t, nil
}

// Orientation is the direction a triangle's apex points
type Orientation string

const (
	Up    Orientation = "up"
	Down  Orientation = "down"
	Left  Orientation = "left"
	Right Orientation = "right"
)

// Coord is a triangle grid coordinate. It encodes to JSON as [x, y].
type Coord struct {
	X int
	Y int
}

// MarshalJSON encodes the coordinate as a two-element array
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnmarshalJSON decodes a two-element array
func (c *Coord) UnmarshalJSON(data []byte) error {
	var xy []int
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("coord must be an [x, y] array: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("coord must have exactly 2 elements, got %d", len(xy))
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

// Triangle is an immutable colourable cell
type Triangle struct {
	kind        TriangleType
	position    Coord
	orientation Orientation
}

// NewTriangle creates a triangle, rejecting orientations the type does not allow
func NewTriangle(t TriangleType, position Coord, orientation Orientation) (Triangle, error) {
	if !t.Allows(orientation) {
		return Triangle{}, fmt.Errorf("%w: %q is not allowed for %q", ErrInvalidTriangleOrientation, orientation, t)
	}
	return Triangle{kind: t, position: position, orientation: orientation}, nil
}

// Type returns the triangle's topology
func (t Triangle) Type() TriangleType { return t.kind }

// Position returns the triangle's coordinate within its tile
func (t Triangle) Position() Coord { return t.position }

// Orientation returns the direction the triangle points
func (t Triangle) Orientation() Orientation { return t.orientation }

type triangleJSON struct {
	Type        TriangleType `json:"type"`
	Position    Coord        `json:"position"`
	Orientation Orientation  `json:"orientation"`
}

// MarshalJSON exposes the triangle's fields for renderers
func (t Triangle) MarshalJSON() ([]byte, error) {
	return json.Marshal(triangleJSON{Type: t.kind, Position: t.position, Orientation: t.orientation})
}
