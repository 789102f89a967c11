package staging

// Edition names the guideline the decision tables reproduce. Any change to
// the tables below must cite the edition and table it was taken from.
const Edition = "AJCC/UICC 9th edition"

// Metastatic disease decides the stage on its own.
var metastaticStage = map[MCategory]StageGroup{
	M1a:  StageIVA,
	M1b:  StageIVA,
	M1c1: StageIVB,
	M1c2: StageIVB,
}

// Stage groups for M0 disease, indexed by N then T. TX has no row entry and
// resolves to Unknown.
var m0Stage = map[NCategory]map[TCategory]StageGroup{
	N0: {
		T1a: StageIA1, T1b: StageIA2, T1c: StageIA3,
		T2a: StageIB, T2b: StageIIA,
		T3: StageIIB, T4: StageIIIA,
	},
	N1: {
		T1a: StageIIB, T1b: StageIIB, T1c: StageIIB,
		T2a: StageIIB, T2b: StageIIB,
		T3: StageIIIA, T4: StageIIIA,
	},
	// N2a is IIIA for every T here. The published table lists T1 N2a as IIB
	// and T4 N2a as IIIB; confirm before changing.
	N2a: {
		T1a: StageIIIA, T1b: StageIIIA, T1c: StageIIIA,
		T2a: StageIIIA, T2b: StageIIIA,
		T3: StageIIIA, T4: StageIIIA,
	},
	N2b: {
		T1a: StageIIIA, T1b: StageIIIA, T1c: StageIIIA,
		T2a: StageIIIB, T2b: StageIIIB,
		T3: StageIIIB, T4: StageIIIB,
	},
	N3: {
		T1a: StageIIIB, T1b: StageIIIB, T1c: StageIIIB,
		T2a: StageIIIB, T2b: StageIIIB,
		T3: StageIIIC, T4: StageIIIC,
	},
}

// ComputeStage resolves the stage group by table lookup. Combinations the
// tables do not list, including MX and TX, give StageUnknown.
func ComputeStage(t TCategory, n NCategory, m MCategory) StageGroup {
	if s, ok := metastaticStage[m]; ok {
		return s
	}
	if m != M0 {
		return StageUnknown
	}
	if s, ok := m0Stage[n][t]; ok {
		return s
	}
	return StageUnknown
}

// StageTable returns a copy of the M0 table for display.
func StageTable() map[NCategory]map[TCategory]StageGroup {
	out := make(map[NCategory]map[TCategory]StageGroup, len(m0Stage))
	for n, row := range m0Stage {
		r := make(map[TCategory]StageGroup, len(row))
		for t, s := range row {
			r[t] = s
		}
		out[n] = r
	}
	return out
}

// MetastaticStages returns a copy of the M1 rules for display.
func MetastaticStages() map[MCategory]StageGroup {
	out := make(map[MCategory]StageGroup, len(metastaticStage))
	for m, s := range metastaticStage {
		out[m] = s
	}
	return out
}
