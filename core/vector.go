package core

import "gonum.org/v1/gonum/spatial/r3"

// Vector3 is a point or direction in R^3. Most of the pipeline works in the
// tangent plane of the sphere (see TangentFrame), but plate drift and
// boundary-compression math needs full 3D vectors. The arithmetic is
// delegated to gonum's spatial/r3 package rather than hand-rolled.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) r3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func fromR3(v r3.Vec) Vector3 { return Vector3{X: v.X, Y: v.Y, Z: v.Z} }

func (v Vector3) Add(o Vector3) Vector3 { return fromR3(r3.Add(v.r3(), o.r3())) }

func (v Vector3) Sub(o Vector3) Vector3 { return fromR3(r3.Sub(v.r3(), o.r3())) }

func (v Vector3) Scale(s float64) Vector3 { return fromR3(r3.Scale(s, v.r3())) }

func (v Vector3) Dot(o Vector3) float64 { return r3.Dot(v.r3(), o.r3()) }

func (v Vector3) Cross(o Vector3) Vector3 { return fromR3(r3.Cross(v.r3(), o.r3())) }

func (v Vector3) Length() float64 { return r3.Norm(v.r3()) }

// Normalize returns a unit vector, or the zero vector if v is too short to
// normalize safely (see spec §7 category 2: division-by-zero guards).
func (v Vector3) Normalize() Vector3 {
	if v.Length() < 1e-12 {
		return Vector3{}
	}
	return fromR3(r3.Unit(v.r3()))
}
