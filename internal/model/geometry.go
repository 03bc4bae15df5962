package model

// Point is a 2D point in image coordinates (pixels, origin top-left).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is the bounding quadrilateral of a recognized text line,
// as reported by the upstream recognizer. Corners are named in
// reading order for an unrotated line.
type Quad struct {
	TopLeft     Point `json:"topLeft"`
	TopRight    Point `json:"topRight"`
	BottomRight Point `json:"bottomRight"`
	BottomLeft  Point `json:"bottomLeft"`
}

// Leading returns the corner where the line's text begins.
func (q Quad) Leading() Point {
	return q.TopLeft
}

// Trailing returns the corner where the line's text ends.
func (q Quad) Trailing() Point {
	return q.TopRight
}

// IsZero reports whether the quad carries no geometry.
func (q Quad) IsZero() bool {
	return q == Quad{}
}
