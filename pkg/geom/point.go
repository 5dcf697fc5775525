package geom

import (
	"fmt"
	"math"
)

// Point is a position (or vector) in diagram coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Origin is the diagram center used by the built-in loop.
var Origin = Point{}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Len returns the Euclidean length of p as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Len()
}

// Angle returns atan2(p.Y, p.X).
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4g, %.4g)", p.X, p.Y)
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Polar returns the unit vector at angle theta (radians).
func Polar(theta float64) Point {
	return Point{math.Cos(theta), math.Sin(theta)}
}
