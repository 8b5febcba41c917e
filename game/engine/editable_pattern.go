package engine

// EditablePattern is a Pattern whose shapes can be replaced wholesale
type EditablePattern struct {
	*Pattern
}

// DefaultShapes returns the degenerate starting layout: one shape with one
// colour group holding the triangle at the origin
func DefaultShapes() []TileShape {
	return []TileShape{{{{X: 0, Y: 0}}}}
}

// NewEditablePattern creates an editable pattern in the default state.
// Content is supplied afterwards through UpdatePattern.
func NewEditablePattern(t TriangleType) *EditablePattern {
	p := &Pattern{
		triangleType: t,
		shapes:       DefaultShapes(),
	}
	p.computePropertiesLocked()
	return &EditablePattern{Pattern: p}
}

// UpdatePattern replaces the shapes and re-derives every property as one step.
// On ErrInvalidPatternShape the pattern is left exactly as it was.
func (e *EditablePattern) UpdatePattern(shapes []TileShape) error {
	if err := ValidateShapes(shapes); err != nil {
		return err
	}

	next := cloneShapes(shapes)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.shapes = next
	e.computePropertiesLocked()
	return nil
}
