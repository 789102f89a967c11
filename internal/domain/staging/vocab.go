package staging

import "fmt"

// InvasionSite is an anatomical structure the primary tumor may invade.
type InvasionSite string

const (
	InvasionMainBronchus            InvasionSite = "main_bronchus"
	InvasionVisceralPleura          InvasionSite = "visceral_pleura"
	InvasionAtelectasis             InvasionSite = "atelectasis"
	InvasionChestWall               InvasionSite = "chest_wall"
	InvasionPhrenicNerve            InvasionSite = "phrenic_nerve"
	InvasionParietalPericardium     InvasionSite = "parietal_pericardium"
	InvasionDiaphragm               InvasionSite = "diaphragm"
	InvasionMediastinum             InvasionSite = "mediastinum"
	InvasionHeartGreatVessels       InvasionSite = "heart_great_vessels"
	InvasionTracheaCarina           InvasionSite = "trachea_carina"
	InvasionRecurrentLaryngealNerve InvasionSite = "recurrent_laryngeal_nerve"
	InvasionEsophagusVertebralBody  InvasionSite = "esophagus_vertebral_body"
)

// InvasionSites lists the invasion vocabulary in canonical order.
var InvasionSites = []InvasionSite{
	InvasionMainBronchus, InvasionVisceralPleura, InvasionAtelectasis,
	InvasionChestWall, InvasionPhrenicNerve, InvasionParietalPericardium,
	InvasionDiaphragm, InvasionMediastinum, InvasionHeartGreatVessels,
	InvasionTracheaCarina, InvasionRecurrentLaryngealNerve, InvasionEsophagusVertebralBody,
}

var invasionLabels = map[InvasionSite]string{
	InvasionMainBronchus:            "Main bronchus involvement",
	InvasionVisceralPleura:          "Visceral pleura invasion",
	InvasionAtelectasis:             "Atelectasis or obstructive pneumonitis",
	InvasionChestWall:               "Chest wall (including superior sulcus tumor)",
	InvasionPhrenicNerve:            "Phrenic nerve",
	InvasionParietalPericardium:     "Parietal pericardium",
	InvasionDiaphragm:               "Diaphragm",
	InvasionMediastinum:             "Mediastinum",
	InvasionHeartGreatVessels:       "Heart or great vessels",
	InvasionTracheaCarina:           "Trachea or carina",
	InvasionRecurrentLaryngealNerve: "Recurrent laryngeal nerve",
	InvasionEsophagusVertebralBody:  "Esophagus or vertebral body",
}

func (s InvasionSite) Valid() bool {
	_, ok := invasionLabels[s]
	return ok
}

func (s InvasionSite) Label() string {
	if l, ok := invasionLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParseInvasionSite(v string) (InvasionSite, error) {
	s := InvasionSite(v)
	if !s.Valid() {
		return "", fmt.Errorf("invalid invasion: %s", v)
	}
	return s, nil
}

// NoduleExtent locates separate tumor nodules relative to the primary.
type NoduleExtent string

const (
	NoduleNone                     NoduleExtent = "none"
	NoduleSameLobe                 NoduleExtent = "same_lobe"
	NoduleDifferentIpsilateralLobe NoduleExtent = "different_ipsilateral_lobe"

	legacyDifferentIpsiLobe NoduleExtent = "different_ipsi_lobe"
)

// NoduleExtents lists the nodule vocabulary in canonical order.
var NoduleExtents = []NoduleExtent{NoduleNone, NoduleSameLobe, NoduleDifferentIpsilateralLobe}

var noduleLabels = map[NoduleExtent]string{
	NoduleNone:                     "None",
	NoduleSameLobe:                 "Separate tumor nodule(s) in the same lobe",
	NoduleDifferentIpsilateralLobe: "Separate tumor nodule(s) in a different ipsilateral lobe",
}

func (e NoduleExtent) Valid() bool {
	_, ok := noduleLabels[e]
	return ok
}

func (e NoduleExtent) Label() string {
	if l, ok := noduleLabels[e]; ok {
		return l
	}
	return string(e)
}

// ParseNoduleExtent accepts the legacy "different_ipsi_lobe" spelling as an
// alias. An empty value means no nodules.
func ParseNoduleExtent(v string) (NoduleExtent, error) {
	switch v {
	case "":
		return NoduleNone, nil
	case string(legacyDifferentIpsiLobe):
		return NoduleDifferentIpsilateralLobe, nil
	}
	e := NoduleExtent(v)
	if !e.Valid() {
		return "", fmt.Errorf("invalid nodules: %s", v)
	}
	return e, nil
}

// NodalLevel is one level of regional lymph node involvement. Levels form a
// set; the worst one present decides the N category.
type NodalLevel string

const (
	NodalN1 NodalLevel = "n1"
	NodalN2 NodalLevel = "n2"
	NodalN3 NodalLevel = "n3"
)

// NodalLevels lists the nodal vocabulary in canonical order.
var NodalLevels = []NodalLevel{NodalN1, NodalN2, NodalN3}

var nodalLabels = map[NodalLevel]string{
	NodalN1: "N1: ipsilateral peribronchial and/or hilar nodes",
	NodalN2: "N2: ipsilateral mediastinal and/or subcarinal nodes",
	NodalN3: "N3: contralateral, scalene or supraclavicular nodes",
}

func (l NodalLevel) Valid() bool {
	_, ok := nodalLabels[l]
	return ok
}

func (l NodalLevel) Label() string {
	if s, ok := nodalLabels[l]; ok {
		return s
	}
	return string(l)
}

func ParseNodalLevel(v string) (NodalLevel, error) {
	l := NodalLevel(v)
	if !l.Valid() {
		return "", fmt.Errorf("invalid nodal level: %s", v)
	}
	return l, nil
}

// MetastasisPattern describes distant metastatic spread.
type MetastasisPattern string

const (
	MetastasisM0   MetastasisPattern = "m0"
	MetastasisM1a  MetastasisPattern = "m1a"
	MetastasisM1b  MetastasisPattern = "m1b"
	MetastasisM1c1 MetastasisPattern = "m1c1"
	MetastasisM1c2 MetastasisPattern = "m1c2"
)

// MetastasisPatterns lists the metastasis vocabulary in canonical order.
var MetastasisPatterns = []MetastasisPattern{
	MetastasisM0, MetastasisM1a, MetastasisM1b, MetastasisM1c1, MetastasisM1c2,
}

var metastasisLabels = map[MetastasisPattern]string{
	MetastasisM0:   "M0: no distant metastasis",
	MetastasisM1a:  "M1a: contralateral nodule, pleural/pericardial nodules or malignant effusion",
	MetastasisM1b:  "M1b: single extrathoracic metastasis in a single organ",
	MetastasisM1c1: "M1c1: multiple extrathoracic metastases in a single organ system",
	MetastasisM1c2: "M1c2: multiple extrathoracic metastases in multiple organ systems",
}

func (p MetastasisPattern) Valid() bool {
	_, ok := metastasisLabels[p]
	return ok
}

func (p MetastasisPattern) Label() string {
	if l, ok := metastasisLabels[p]; ok {
		return l
	}
	return string(p)
}

// ParseMetastasisPattern maps an empty value to m0.
func ParseMetastasisPattern(v string) (MetastasisPattern, error) {
	if v == "" {
		return MetastasisM0, nil
	}
	p := MetastasisPattern(v)
	if !p.Valid() {
		return "", fmt.Errorf("invalid metastasis pattern: %s", v)
	}
	return p, nil
}
