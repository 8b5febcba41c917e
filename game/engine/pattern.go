package engine

import (
	"fmt"
	"sync"
)

// ColorGroup is a set of triangle coordinates sharing one colour
type ColorGroup []Coord

// TileShape is one puzzle piece: an ordered partition into colour groups
type TileShape []ColorGroup

// Clone returns a deep copy of the shape
func (s TileShape) Clone() TileShape {
	if s == nil {
		return nil
	}
	out := make(TileShape, len(s))
	for i, group := range s {
		out[i] = append(ColorGroup(nil), group...)
	}
	return out
}

// Bounds is the inclusive bounding box of a set of coordinates
type Bounds struct {
	Min Coord `json:"min"`
	Max Coord `json:"max"`
}

// Properties are the values a Pattern derives from its shapes
type Properties struct {
	NumColorGroups int    `json:"num_color_groups"`
	NumTriangles   int    `json:"num_triangles"`
	Bounds         Bounds `json:"bounds"`
}

// PatternSnapshot is a consistent copy of a pattern's shapes and derived properties
type PatternSnapshot struct {
	TriangleType TriangleType `json:"triangle_type"`
	Shapes       []TileShape  `json:"shapes"`
	Properties
}

// Pattern is a fixed-topology aggregate of tile shapes
type Pattern struct {
	mu           sync.RWMutex
	triangleType TriangleType
	shapes       []TileShape
	props        Properties
}

// NewPattern creates a pattern from a non-empty sequence of shapes that all
// have the same number of colour groups
func NewPattern(t TriangleType, shapes []TileShape) (*Pattern, error) {
	if err := ValidateShapes(shapes); err != nil {
		return nil, err
	}

	p := &Pattern{
		triangleType: t,
		shapes:       cloneShapes(shapes),
	}
	p.computePropertiesLocked()
	return p, nil
}

// ValidateShapes checks the shape rules shared by construction and update
func ValidateShapes(shapes []TileShape) error {
	if len(shapes) == 0 {
		return fmt.Errorf("%w: shapes must not be empty", ErrInvalidPatternShape)
	}

	want := len(shapes[0])
	for i, shape := range shapes[1:] {
		if len(shape) != want {
			return fmt.Errorf("%w: shape %d has %d color groups, shape 0 has %d",
				ErrInvalidPatternShape, i+1, len(shape), want)
		}
	}
	return nil
}

// TriangleType returns the pattern's fixed topology
func (p *Pattern) TriangleType() TriangleType {
	return p.triangleType
}

// Shapes returns a deep copy of the current shapes
func (p *Pattern) Shapes() []TileShape {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneShapes(p.shapes)
}

// NumColorGroups returns the colour-group count shared by every shape
func (p *Pattern) NumColorGroups() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.props.NumColorGroups
}

// Properties returns the derived properties
func (p *Pattern) Properties() Properties {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.props
}

// Snapshot returns shapes and derived properties read under a single lock
func (p *Pattern) Snapshot() PatternSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PatternSnapshot{
		TriangleType: p.triangleType,
		Shapes:       cloneShapes(p.shapes),
		Properties:   p.props,
	}
}

// ComputeProperties re-derives every property from the current shapes.
// Calling it again without changing the shapes yields the same result.
func (p *Pattern) ComputeProperties() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.computePropertiesLocked()
}

func (p *Pattern) computePropertiesLocked() {
	p.props = deriveProperties(p.shapes)
}

func deriveProperties(shapes []TileShape) Properties {
	var props Properties
	if len(shapes) == 0 {
		return props
	}

	props.NumColorGroups = len(shapes[0])

	seen := make(map[Coord]struct{})
	for _, group := range shapes[0] {
		for _, c := range group {
			seen[c] = struct{}{}
		}
	}
	props.NumTriangles = len(seen)

	first := true
	for _, shape := range shapes {
		for _, group := range shape {
			for _, c := range group {
				if first {
					props.Bounds = Bounds{Min: c, Max: c}
					first = false
					continue
				}
				props.Bounds.Min.X = min(props.Bounds.Min.X, c.X)
				props.Bounds.Min.Y = min(props.Bounds.Min.Y, c.Y)
				props.Bounds.Max.X = max(props.Bounds.Max.X, c.X)
				props.Bounds.Max.Y = max(props.Bounds.Max.Y, c.Y)
			}
		}
	}

	return props
}

func cloneShapes(shapes []TileShape) []TileShape {
	out := make([]TileShape, len(shapes))
	for i, shape := range shapes {
		out[i] = shape.Clone()
	}
	return out
}
