package model

import "fmt"

// Point represents a 2D point in page space, top-left origin, y growing down.
type Point struct {
	X, Y float64
}

// Rect represents a rectangle in page space
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRect creates a rectangle from coordinates
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the right edge X coordinate
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// IsValid returns true if the rectangle has positive dimensions
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// PageGeometry describes the target page in points: overall size plus a
// uniform margin on all four sides.
type PageGeometry struct {
	Width  float64
	Height float64
	Margin float64
}

// Validate checks that the geometry leaves a usable content area. Both
// dimensions must exceed twice the margin.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("page size %.4gx%.4g is not positive", g.Width, g.Height)
	}
	if g.Margin < 0 {
		return fmt.Errorf("margin %.4g is negative", g.Margin)
	}
	if g.Width <= 2*g.Margin || g.Height <= 2*g.Margin {
		return fmt.Errorf("margin %.4g leaves no content area on a %.4gx%.4g page", g.Margin, g.Width, g.Height)
	}
	return nil
}

// TextWidth returns the horizontal space available for content.
func (g PageGeometry) TextWidth() float64 {
	return g.Width - 2*g.Margin
}

// UsableHeight returns the vertical space available for content.
func (g PageGeometry) UsableHeight() float64 {
	return g.Height - 2*g.Margin
}

// English Metric Units, the length unit of the zip/XML office formats.
const (
	EMUPerPoint = 12700
	EMUPerInch  = 914400
)

// EMUToPoints converts a length in EMUs to points.
func EMUToPoints(emu int64) float64 {
	return float64(emu) / EMUPerPoint
}
