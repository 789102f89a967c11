package staging

import "math"

var (
	t4Invasions = map[InvasionSite]bool{
		InvasionDiaphragm: true, InvasionMediastinum: true, InvasionHeartGreatVessels: true,
		InvasionTracheaCarina: true, InvasionRecurrentLaryngealNerve: true, InvasionEsophagusVertebralBody: true,
	}
	t3Invasions = map[InvasionSite]bool{
		InvasionChestWall: true, InvasionPhrenicNerve: true, InvasionParietalPericardium: true,
	}
	t2Invasions = map[InvasionSite]bool{
		InvasionMainBronchus: true, InvasionVisceralPleura: true, InvasionAtelectasis: true,
	}
)

// ClampSize maps negative and NaN sizes to 0.
func ClampSize(cm float64) float64 {
	if math.IsNaN(cm) || cm < 0 {
		return 0
	}
	return cm
}

// ComputeT derives the T category. Rules are checked from most to least
// severe and the first match wins. A size of 0 after clamping means the
// primary tumor was not measured and always yields TX.
func ComputeT(sizeCM float64, invasions []InvasionSite, nodules NoduleExtent) TCategory {
	size := ClampSize(sizeCM)
	if size == 0 {
		return TX
	}

	switch {
	case size > 7 || nodules == NoduleDifferentIpsilateralLobe || anyOf(invasions, t4Invasions):
		return T4
	case size > 5 || nodules == NoduleSameLobe || anyOf(invasions, t3Invasions):
		return T3
	case size > 4:
		return T2b
	case size > 3 || anyOf(invasions, t2Invasions):
		return T2a
	case size > 2:
		return T1c
	case size > 1:
		return T1b
	default:
		return T1a
	}
}

func anyOf(invasions []InvasionSite, set map[InvasionSite]bool) bool {
	for _, i := range invasions {
		if set[i] {
			return true
		}
	}
	return false
}
