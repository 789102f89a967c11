package staging

// ComputeN derives the N category from the involved nodal levels. The
// multiple-station flag only matters when n2 is involved.
func ComputeN(involvement []NodalLevel, multipleN2Stations bool) NCategory {
	var n1, n2, n3 bool
	for _, l := range involvement {
		switch l {
		case NodalN1:
			n1 = true
		case NodalN2:
			n2 = true
		case NodalN3:
			n3 = true
		}
	}

	switch {
	case n3:
		return N3
	case n2 && multipleN2Stations:
		return N2b
	case n2:
		return N2a
	case n1:
		return N1
	default:
		return N0
	}
}
