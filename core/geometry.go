package core

import "math"

// TangentFrame is an orthonormal basis (east, north) tangent to the sphere
// at a region's position, used to express wind/current vectors without
// carrying a full 3D representation through every kernel (spec invariant 3).
type TangentFrame struct {
	East, North Vector3
}

// up is the reference axis used to build the tangent frame; see
// BuildTangentFrame for the pole fallback that keeps it well-defined
// everywhere on the sphere.
var up = Vector3{X: 0, Y: 1, Z: 0}

// BuildTangentFrame constructs an orthonormal (east, north) basis tangent to
// the unit sphere at position p. Near the poles, where p is nearly parallel
// to the reference "up" axis, east falls back to (1,0,0) per spec §7
// category 2 (div-by-zero guard, taken when the cross-product length is
// below 1e-6).
func BuildTangentFrame(p Vector3) TangentFrame {
	east := up.Cross(p)
	if east.Length() < 1e-6 {
		east = Vector3{X: 1, Y: 0, Z: 0}
		east = east.Sub(p.Scale(east.Dot(p)))
	}
	east = east.Normalize()
	north := p.Cross(east).Normalize()
	return TangentFrame{East: east, North: north}
}

// RegionGeometry holds the precomputed per-region geometric fields listed in
// spec §3: latitude, longitude, sinLat and the tangent frame.
type RegionGeometry struct {
	LatDeg, LonDeg float64
	SinLat         float64
	Frame          TangentFrame
}

// ComputeGeometry precomputes RegionGeometry for every region of a mesh.
func ComputeGeometry(mesh *SphereMesh) []RegionGeometry {
	out := make([]RegionGeometry, mesh.NumRegions)
	for r := 0; r < mesh.NumRegions; r++ {
		p := mesh.RXYZ[r]
		lat := math.Asin(clamp(p.Y, -1, 1))
		lon := math.Atan2(p.Z, p.X)
		out[r] = RegionGeometry{
			LatDeg: lat * 180 / math.Pi,
			LonDeg: lon * 180 / math.Pi,
			SinLat: math.Sin(lat),
			Frame:  BuildTangentFrame(p),
		}
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep is the standard cubic Hermite interpolant used throughout the
// pressure and wind kernels (spec §4.H).
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
