package climate

import "planetgen/core"

// Class ids for r_koppen (spec §3's "climate class id"). Grouped by major
// band; Ocean is the sentinel for cells spec §4.L routes straight to the
// ocean class before any T/P test runs.
const (
	ClassOcean uint8 = iota
	ClassAf
	ClassAm
	ClassAw
	ClassBWh
	ClassBWk
	ClassBSh
	ClassBSk
	ClassCsa
	ClassCsb
	ClassCsc
	ClassCwa
	ClassCwb
	ClassCwc
	ClassCfa
	ClassCfb
	ClassCfc
	ClassDsa
	ClassDsb
	ClassDsc
	ClassDsd
	ClassDwa
	ClassDwb
	ClassDwc
	ClassDwd
	ClassDfa
	ClassDfb
	ClassDfc
	ClassDfd
	ClassET
	ClassEF
)

// ClassName returns the canonical 2-3 letter Köppen code for a class id,
// falling back to "Dfc" for any id this package didn't assign (spec §4.L:
// "fall back to Df<letter> or Dfc if a code is unrepresentable").
func ClassName(c uint8) string {
	names := map[uint8]string{
		ClassOcean: "Ocean",
		ClassAf:    "Af", ClassAm: "Am", ClassAw: "Aw",
		ClassBWh: "BWh", ClassBWk: "BWk", ClassBSh: "BSh", ClassBSk: "BSk",
		ClassCsa: "Csa", ClassCsb: "Csb", ClassCsc: "Csc",
		ClassCwa: "Cwa", ClassCwb: "Cwb", ClassCwc: "Cwc",
		ClassCfa: "Cfa", ClassCfb: "Cfb", ClassCfc: "Cfc",
		ClassDsa: "Dsa", ClassDsb: "Dsb", ClassDsc: "Dsc", ClassDsd: "Dsd",
		ClassDwa: "Dwa", ClassDwb: "Dwb", ClassDwc: "Dwc", ClassDwd: "Dwd",
		ClassDfa: "Dfa", ClassDfb: "Dfb", ClassDfc: "Dfc", ClassDfd: "Dfd",
		ClassET: "ET", ClassEF: "EF",
	}
	if name, ok := names[c]; ok {
		return name
	}
	return "Dfc"
}

// Classify implements spec §4.L for every region: ocean cells get
// ClassOcean; land cells have their local (hemisphere-correct) warm and
// cold season temperature and precipitation derived from the two
// seasonal T/P arrays, then run through ClassifyFromStats.
func Classify(mesh *core.SphereMesh, geometry []core.RegionGeometry, isOcean []bool, tSummerNorm, tWinterNorm, pSummerNorm, pWinterNorm []float32) []uint8 {
	n := mesh.NumRegions
	out := make([]uint8, n)

	for r := 0; r < n; r++ {
		if isOcean[r] {
			out[r] = ClassOcean
			continue
		}

		northern := geometry[r].LatDeg >= 0
		localSummerT, localWinterT := DenormTemp(float64(tSummerNorm[r])), DenormTemp(float64(tWinterNorm[r]))
		localSummerP, localWinterP := denormPrecip(pSummerNorm[r]), denormPrecip(pWinterNorm[r])
		if !northern {
			localSummerT, localWinterT = localWinterT, localSummerT
			localSummerP, localWinterP = localWinterP, localSummerP
		}

		out[r] = ClassifyFromStats(localSummerT, localWinterT, localSummerP, localWinterP)
	}
	return out
}

// denormPrecip maps normalized [0,1] precipitation into a physical mm/
// half-year figure: the 95th-percentile normalization of spec §4.J gives
// no fixed physical ceiling, so 1.0 is pinned to 1500mm, the rough
// per-half-year total of a very wet maritime climate.
func denormPrecip(norm float32) float64 {
	return float64(norm) * 1500
}

// ClassifyFromStats implements the T/P decision tree of spec §4.L, given
// already-localized (hemisphere-corrected) warm/cold season Celsius
// temperatures and half-year precipitation totals. Pann approximates the
// annual total as the sum of the two half-year totals (only two seasonal
// samples are tracked, rather than 12 monthly ones).
func ClassifyFromStats(Thot, Tcold, summerP, winterP float64) uint8 {
	Pann := summerP + winterP
	Tmean := (Thot + Tcold) / 2
	Tshoulder := Thot - (Thot-Tcold)*2/6

	total := summerP + winterP
	summerFrac := 0.5
	if total > 1e-9 {
		summerFrac = summerP / total
	}

	var Pthresh float64
	switch {
	case summerFrac >= 0.7:
		Pthresh = 20*Tmean + 280
	case summerFrac <= 0.3:
		Pthresh = 20 * Tmean
	default:
		Pthresh = 20*Tmean + 140
	}

	if Pann < Pthresh {
		hot := Tmean >= 18
		if Pann < Pthresh*0.5 {
			if hot {
				return ClassBWh
			}
			return ClassBWk
		}
		if hot {
			return ClassBSh
		}
		return ClassBSk
	}

	driest := winterP
	wettest := summerP
	if driest > wettest {
		driest, wettest = wettest, driest
	}

	switch {
	case Thot < 0:
		return ClassEF
	case Thot < 10:
		return ClassET
	case Tcold >= 18:
		// Tropical: Af/Am/Aw by the driest-season precipitation test.
		if driest >= 60 {
			return ClassAf
		}
		if driest >= 100-Pann/25 {
			return ClassAm
		}
		return ClassAw
	case Tcold >= -3:
		letter := temperateLetter(Thot)
		return dryPatternClass(summerP, winterP, true, letter)
	default:
		letter := continentalLetter(Thot, Tcold)
		_ = Tshoulder
		return dryPatternClass(summerP, winterP, false, letter)
	}
}

func temperateLetter(Thot float64) string {
	if Thot >= 22 {
		return "a"
	}
	return "b"
}

func continentalLetter(Thot, Tcold float64) string {
	if Thot >= 22 {
		return "a"
	}
	if Tcold < -38 {
		return "d"
	}
	return "b"
}

// dryPatternClass picks the precipitation-pattern letter (s|w|f) by
// comparing local summer/winter totals, then assembles the class id.
func dryPatternClass(summerP, winterP float64, temperate bool, letter string) uint8 {
	total := summerP + winterP
	sDry := total > 0 && summerP < 0.3*winterP && summerP < 40
	wDry := total > 0 && winterP < 0.1*summerP

	if temperate {
		switch {
		case sDry:
			return csClass(letter)
		case wDry:
			return cwClass(letter)
		default:
			return cfClass(letter)
		}
	}
	switch {
	case sDry:
		return dsClass(letter)
	case wDry:
		return dwClass(letter)
	default:
		return dfClass(letter)
	}
}

func csClass(letter string) uint8 {
	switch letter {
	case "a":
		return ClassCsa
	case "c":
		return ClassCsc
	default:
		return ClassCsb
	}
}

func cwClass(letter string) uint8 {
	switch letter {
	case "a":
		return ClassCwa
	case "c":
		return ClassCwc
	default:
		return ClassCwb
	}
}

func cfClass(letter string) uint8 {
	switch letter {
	case "a":
		return ClassCfa
	case "c":
		return ClassCfc
	default:
		return ClassCfb
	}
}

func dsClass(letter string) uint8 {
	switch letter {
	case "a":
		return ClassDsa
	case "d":
		return ClassDsd
	default:
		return ClassDsb
	}
}

func dwClass(letter string) uint8 {
	switch letter {
	case "a":
		return ClassDwa
	case "d":
		return ClassDwd
	default:
		return ClassDwb
	}
}

func dfClass(letter string) uint8 {
	switch letter {
	case "a":
		return ClassDfa
	case "d":
		return ClassDfd
	default:
		return ClassDfb
	}
}
