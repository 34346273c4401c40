// Package contour extracts and simplifies silhouette polygons from
// binary opacity masks.
package contour

import (
	"errors"
	"math"
)

// Contour errors.
var (
	ErrNoContour = errors.New("no contour found")
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Contour is an ordered closed sequence of pixel points. The closing
// edge from the last point back to the first is implicit.
type Contour []Point

// Area returns the enclosed polygon area via the shoelace formula.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += float64(p.X*q.Y - q.X*p.Y)
	}
	return math.Abs(sum) / 2
}

// ArcLength returns the closed perimeter length.
func (c Contour) ArcLength() float64 {
	if len(c) < 2 {
		return 0
	}
	total := 0.0
	for i, p := range c {
		q := c[(i+1)%len(c)]
		dx := float64(q.X - p.X)
		dy := float64(q.Y - p.Y)
		total += math.Hypot(dx, dy)
	}
	return total
}
