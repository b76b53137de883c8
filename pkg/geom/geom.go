// Package geom provides the value types used to place road segments on the
// editor canvas: absolute positions, movement vectors and closed numeric
// ranges.
//
// All types have value semantics; operations return new values and never
// modify the receiver. Coordinates are planar (canvas units), not
// geographic, so distances are Euclidean.
package geom

import (
	"cmp"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Position is a point on the canvas.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Origin is the zero position.
var Origin = Position{}

// Movement is a translation vector.
type Movement struct {
	DX float64 `json:"dx" yaml:"dx"`
	DY float64 `json:"dy" yaml:"dy"`
}

// Pos is a convenience constructor for Position.
func Pos(x, y float64) Position { return Position{X: x, Y: y} }

// Move is a convenience constructor for Movement.
func Move(dx, dy float64) Movement { return Movement{DX: dx, DY: dy} }

// String returns pretty printed value for Position.
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Point converts p to an orb point.
func (p Position) Point() orb.Point { return orb.Point{p.X, p.Y} }

// Translate returns p moved by m.
func (p Position) Translate(m Movement) Position {
	return Position{X: p.X + m.DX, Y: p.Y + m.DY}
}

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	return planar.Distance(p.Point(), q.Point())
}

// To returns the movement that translates p onto q.
func (p Position) To(q Position) Movement {
	return Movement{DX: q.X - p.X, DY: q.Y - p.Y}
}

// Rotate returns p rotated counter-clockwise by degrees around center.
func (p Position) Rotate(center Position, degrees float64) Position {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Position{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Position) Position {
	return Position{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Centroid returns the average of the given positions, or Origin for none.
func Centroid(ps ...Position) Position {
	if len(ps) == 0 {
		return Origin
	}
	var c Position
	for _, p := range ps {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(ps))
	return Position{X: c.X / n, Y: c.Y / n}
}

// String returns pretty printed value for Movement.
func (m Movement) String() string {
	return fmt.Sprintf("<%g, %g>", m.DX, m.DY)
}

// Invert returns the movement that undoes m.
func (m Movement) Invert() Movement {
	return Movement{DX: -m.DX, DY: -m.DY}
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Range is a closed interval [Min, Max].
type Range[T cmp.Ordered] struct {
	Min T `json:"min" toml:"min" yaml:"min"`
	Max T `json:"max" toml:"max" yaml:"max"`
}

// NewRange returns the closed range spanning a and b in either order.
func NewRange[T cmp.Ordered](a, b T) Range[T] {
	return Range[T]{Min: min(a, b), Max: max(a, b)}
}

// Contains reports whether v lies within the closed range.
func (r Range[T]) Contains(v T) bool {
	return r.Min <= v && v <= r.Max
}

// String returns the range in interval notation.
func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v]", r.Min, r.Max)
}
