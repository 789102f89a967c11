package staging

// TCategory is the primary tumor category.
type TCategory string

const (
	TX  TCategory = "TX"
	T1a TCategory = "T1a"
	T1b TCategory = "T1b"
	T1c TCategory = "T1c"
	T2a TCategory = "T2a"
	T2b TCategory = "T2b"
	T3  TCategory = "T3"
	T4  TCategory = "T4"
)

// TCategories is ordered from least to most severe.
var TCategories = []TCategory{TX, T1a, T1b, T1c, T2a, T2b, T3, T4}

var tLabels = map[TCategory]string{
	TX:  "Primary tumor cannot be assessed",
	T1a: "Tumor ≤1 cm",
	T1b: "Tumor >1 cm and ≤2 cm",
	T1c: "Tumor >2 cm and ≤3 cm",
	T2a: "Tumor >3 cm and ≤4 cm, or T2 invasion",
	T2b: "Tumor >4 cm and ≤5 cm",
	T3:  "Tumor >5 cm and ≤7 cm, same-lobe nodule or T3 invasion",
	T4:  "Tumor >7 cm, ipsilateral different-lobe nodule or T4 invasion",
}

func (t TCategory) Label() string {
	if l, ok := tLabels[t]; ok {
		return l
	}
	return string(t)
}

// Rank orders categories by severity; unknown codes rank below TX.
func (t TCategory) Rank() int {
	for i, c := range TCategories {
		if c == t {
			return i
		}
	}
	return -1
}

// NCategory is the regional lymph node category.
type NCategory string

const (
	N0  NCategory = "N0"
	N1  NCategory = "N1"
	N2a NCategory = "N2a"
	N2b NCategory = "N2b"
	N3  NCategory = "N3"
)

// NCategories is ordered from least to most severe.
var NCategories = []NCategory{N0, N1, N2a, N2b, N3}

var nLabels = map[NCategory]string{
	N0:  "No regional lymph node metastasis",
	N1:  "Ipsilateral peribronchial and/or hilar nodes",
	N2a: "Single N2 nodal station",
	N2b: "Multiple N2 nodal stations",
	N3:  "Contralateral, scalene or supraclavicular nodes",
}

func (n NCategory) Label() string {
	if l, ok := nLabels[n]; ok {
		return l
	}
	return string(n)
}

// MCategory is the distant metastasis category.
type MCategory string

const (
	M0   MCategory = "M0"
	M1a  MCategory = "M1a"
	M1b  MCategory = "M1b"
	M1c1 MCategory = "M1c1"
	M1c2 MCategory = "M1c2"
	MX   MCategory = "MX"
)

// MCategories lists every M code, MX last.
var MCategories = []MCategory{M0, M1a, M1b, M1c1, M1c2, MX}

var mLabels = map[MCategory]string{
	M0:   "No distant metastasis",
	M1a:  "Intrathoracic metastatic disease",
	M1b:  "Single extrathoracic metastasis",
	M1c1: "Multiple extrathoracic metastases in one organ system",
	M1c2: "Multiple extrathoracic metastases in several organ systems",
	MX:   "Distant metastasis cannot be assessed",
}

func (m MCategory) Label() string {
	if l, ok := mLabels[m]; ok {
		return l
	}
	return string(m)
}

// StageGroup is the overall prognostic stage.
type StageGroup string

const (
	StageIA1     StageGroup = "IA1"
	StageIA2     StageGroup = "IA2"
	StageIA3     StageGroup = "IA3"
	StageIB      StageGroup = "IB"
	StageIIA     StageGroup = "IIA"
	StageIIB     StageGroup = "IIB"
	StageIIIA    StageGroup = "IIIA"
	StageIIIB    StageGroup = "IIIB"
	StageIIIC    StageGroup = "IIIC"
	StageIVA     StageGroup = "IVA"
	StageIVB     StageGroup = "IVB"
	StageUnknown StageGroup = "Unknown"
)

// StageGroups is ordered from least to most advanced, Unknown last.
var StageGroups = []StageGroup{
	StageIA1, StageIA2, StageIA3, StageIB, StageIIA, StageIIB,
	StageIIIA, StageIIIB, StageIIIC, StageIVA, StageIVB, StageUnknown,
}

func (s StageGroup) Label() string {
	if s == StageUnknown {
		return "Stage cannot be determined"
	}
	return "Stage " + string(s)
}
