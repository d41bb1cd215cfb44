package atmosphere

import (
	"math"
	"sort"

	"planetgen/core"

	"gonum.org/v1/gonum/stat"
)

// Gradient holds the per-region weighted least-squares pressure gradient
// (spec §4.H "Gradient on the mesh"), expressed in the local tangent
// frame's east/north components.
type Gradient struct {
	East, North []float32
}

// ComputeGradient performs, per region, two 1-D weighted least-squares
// regressions of neighbor pressure differences against east/north-
// projected neighbor offsets, zeroing out when the denominator falls below
// 1e-12 (division-by-zero guard, spec §7 category 2).
func ComputeGradient(mesh *core.SphereMesh, geometry []core.RegionGeometry, pressure []float32) Gradient {
	n := mesh.NumRegions
	g := Gradient{East: make([]float32, n), North: make([]float32, n)}

	for r := 0; r < n; r++ {
		frame := geometry[r].Frame
		pr := mesh.RXYZ[r]

		var sumDE2, sumDEDP, sumDN2, sumDNDP float64
		for _, nbr32 := range mesh.Neighbors(r) {
			nbr := int(nbr32)
			offset := mesh.RXYZ[nbr].Sub(pr)
			de := offset.Dot(frame.East)
			dn := offset.Dot(frame.North)
			dp := float64(pressure[nbr] - pressure[r])

			sumDE2 += de * de
			sumDEDP += de * dp
			sumDN2 += dn * dn
			sumDNDP += dn * dp
		}

		if sumDE2 > 1e-12 {
			g.East[r] = float32(sumDEDP / sumDE2)
		}
		if sumDN2 > 1e-12 {
			g.North[r] = float32(sumDNDP / sumDN2)
		}
	}

	return g
}

// WindField is the east/north wind components and normalized speed
// produced by rotating the pressure-gradient force (spec §4.H
// "Pressure -> wind").
type WindField struct {
	East, North, Speed []float32
}

// ComputeWind rotates the pressure-gradient force by the latitude-
// dependent geostrophic/frictional angle, scales magnitude by 0.6, and
// normalizes speed by its 95th percentile (spec invariant 6).
func ComputeWind(geometry []core.RegionGeometry, grad Gradient) WindField {
	n := len(geometry)
	we := make([]float32, n)
	wn := make([]float32, n)
	rawSpeed := make([]float64, n)

	sin5 := math.Sin(5 * math.Pi / 180)

	for r := 0; r < n; r++ {
		pgfE := -float64(grad.East[r])
		pgfN := -float64(grad.North[r])

		sinLat := geometry[r].SinLat
		sign := -1.0
		if sinLat < 0 {
			sign = 1.0
		}

		geoAngleDeg := 70 * core.Smoothstep(0, sin5, math.Abs(sinLat))
		frictionAngleDeg := 20.0
		totalAngle := sign * (geoAngleDeg - frictionAngleDeg) * math.Pi / 180

		cosT, sinT := math.Cos(totalAngle), math.Sin(totalAngle)
		rE := (cosT*pgfE - sinT*pgfN) * 0.6
		rN := (sinT*pgfE + cosT*pgfN) * 0.6

		we[r] = float32(rE)
		wn[r] = float32(rN)
		rawSpeed[r] = math.Hypot(rE, rN)
	}

	p95 := percentile95(rawSpeed)
	speed := make([]float32, n)
	for r := 0; r < n; r++ {
		s := 0.0
		if p95 > 1e-12 {
			s = rawSpeed[r] / p95
		}
		speed[r] = float32(clamp(s, 0, 1))
	}

	return WindField{East: we, North: wn, Speed: speed}
}

// percentile95 uses gonum/stat.Quantile on a sorted copy to find the 95th
// percentile speed used to normalize r_wind_speed into [0,1].
func percentile95(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(0.95, stat.Empirical, sorted, nil)
}
