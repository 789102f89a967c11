package staging

var mByPattern = map[MetastasisPattern]MCategory{
	MetastasisM0:   M0,
	MetastasisM1a:  M1a,
	MetastasisM1b:  M1b,
	MetastasisM1c1: M1c1,
	MetastasisM1c2: M1c2,
}

// ComputeM maps a metastasis pattern to its M category, MX when unrecognized.
func ComputeM(pattern MetastasisPattern) MCategory {
	if m, ok := mByPattern[pattern]; ok {
		return m
	}
	return MX
}
