// Package atmosphere implements spec §4.H: the ITCZ spline, pressure field
// assembly, Laplacian smoothing, mesh gradient estimation and the
// pressure-to-wind conversion, generalizing latitude-band sampling and
// smoothstep profiles from a lat/lon grid to the mesh's irregular
// per-region adjacency.
package atmosphere

import (
	"math"

	"planetgen/core"
)

const itczSamples = 72

// ITCZSpline is a periodic natural cubic spline fit through 72 evenly
// spaced longitude samples of the ITCZ latitude (spec §4.H).
type ITCZSpline struct {
	lon  []float64 // sample longitudes, degrees, length itczSamples
	y    []float64 // itcz degrees at each sample, after smoothing
	m    []float64 // second derivatives at each knot (periodic spline)
}

// BuildITCZSpline samples itczDeg at 72 longitudes for the given season,
// smooths the series with three periodic (0.25,0.5,0.25) moving-average
// passes, and solves the periodic natural cubic spline system by 20
// Gauss-Seidel iterations.
func BuildITCZSpline(mesh *core.SphereMesh, geometry []core.RegionGeometry, elev []float32, summer bool) *ITCZSpline {
	lon := make([]float64, itczSamples)
	y := make([]float64, itczSamples)

	for i := 0; i < itczSamples; i++ {
		lonDeg := -180 + 360*float64(i)/itczSamples
		lon[i] = lonDeg
		y[i] = sampleITCZ(mesh, geometry, elev, lonDeg, summer)
	}

	lo, hi := 5.0, 20.0
	if !summer {
		lo, hi = -20, -5
	}
	y = periodicSmooth3(y)
	for i := range y {
		y[i] = clamp(y[i], lo, hi)
	}

	s := &ITCZSpline{lon: lon, y: y}
	s.m = solvePeriodicSpline(y, 20)
	return s
}

// sampleITCZ implements the per-longitude itczDeg formula: scan every
// region lying within 20 degrees of longitude and 20 degrees of latitude of
// (lonDeg, one of the summer-hemisphere latitudes 5/10/15/20), average land
// fraction and positive elevation over those hits, and fold them into the
// clamp(5+15*min(1, 2*landFrac)-5*avgElev, 5, 20) formula. Regions are
// scanned directly; no geographic binning index is built.
func sampleITCZ(mesh *core.SphereMesh, geometry []core.RegionGeometry, elev []float32, lonDeg float64, summer bool) float64 {
	lats := []float64{5, 10, 15, 20}
	landSum, landCount := 0.0, 0
	elevSum, elevCount := 0.0, 0

	for r, g := range geometry {
		dLon := angularDiffDeg(g.LonDeg, lonDeg)
		if math.Abs(dLon) > 20 {
			continue
		}
		for _, lat := range lats {
			targetLat := lat
			if !summer {
				targetLat = -lat
			}
			if math.Abs(g.LatDeg-targetLat) > 20 {
				continue
			}
			landCount++
			if elev[r] > 0 {
				landSum += 1
				elevSum += float64(elev[r])
				elevCount++
			}
		}
	}

	landFrac := 0.0
	if landCount > 0 {
		landFrac = landSum / float64(landCount)
	}
	avgElev := 0.0
	if elevCount > 0 {
		avgElev = elevSum / float64(elevCount)
	}

	deg := clamp(5+15*math.Min(1, 2*landFrac)-5*avgElev, 5, 20)
	if !summer {
		deg = -deg
	}
	return deg
}

func angularDiffDeg(a, b float64) float64 {
	d := math.Mod(a-b+540, 360) - 180
	return d
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

// periodicSmooth3 runs three passes of the periodic moving average
// (0.25, 0.5, 0.25) over a circular series.
func periodicSmooth3(y []float64) []float64 {
	n := len(y)
	cur := append([]float64(nil), y...)
	for pass := 0; pass < 3; pass++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			prev := cur[(i-1+n)%n]
			nxt := cur[(i+1)%n]
			next[i] = 0.25*prev + 0.5*cur[i] + 0.25*nxt
		}
		cur = next
	}
	return cur
}

// solvePeriodicSpline computes natural-cubic-spline second derivatives for
// a periodic series via 20 Gauss-Seidel sweeps over the tridiagonal
// (cyclic) system, assuming unit knot spacing (itczSamples evenly spaced
// samples around a period).
func solvePeriodicSpline(y []float64, iterations int) []float64 {
	n := len(y)
	m := make([]float64, n)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		next := y[(i+1)%n]
		prev := y[(i-1+n)%n]
		rhs[i] = 6 * (next - 2*y[i] + prev)
	}

	for iter := 0; iter < iterations; iter++ {
		for i := 0; i < n; i++ {
			m[i] = (rhs[i] - m[(i-1+n)%n] - m[(i+1)%n]) / 4
		}
	}
	return m
}

// Eval returns the ITCZ latitude at an arbitrary longitude in degrees,
// interpolating the periodic cubic spline between the two bracketing
// samples.
func (s *ITCZSpline) Eval(lonDeg float64) float64 {
	n := len(s.lon)
	norm := math.Mod(lonDeg+180, 360)
	if norm < 0 {
		norm += 360
	}
	frac := norm / 360 * float64(n)
	i0 := int(math.Floor(frac)) % n
	i1 := (i0 + 1) % n
	t := frac - math.Floor(frac)

	y0, y1 := s.y[i0], s.y[i1]
	m0, m1 := s.m[i0], s.m[i1]

	a := y0
	b := y1 - y0 - (2*m0+m1)/6
	c := m0 / 2
	d := (m1 - m0) / 6
	return a + b*t + c*t*t + d*t*t*t
}
