package staging

import (
	"encoding/json"
	"sort"
)

// Inputs holds the raw findings a clinician edits.
type Inputs struct {
	SizeCM             float64           `json:"size_cm" yaml:"size_cm"`
	Invasions          []InvasionSite    `json:"invasions" yaml:"invasions"`
	Nodules            NoduleExtent      `json:"nodules" yaml:"nodules"`
	NodalInvolvement   []NodalLevel      `json:"n_involvement" yaml:"n_involvement"`
	MultipleN2Stations bool              `json:"is_multiple_n2_stations" yaml:"is_multiple_n2_stations"`
	Metastasis         MetastasisPattern `json:"meta_type" yaml:"meta_type"`
	TumorLocation      string            `json:"tumor_location,omitempty" yaml:"tumor_location,omitempty"`
	TumorDescription   string            `json:"tumor_description,omitempty" yaml:"tumor_description,omitempty"`
}

// DefaultInputs is the state of a newly opened case.
func DefaultInputs() Inputs {
	return Inputs{
		Nodules:    NoduleNone,
		Metastasis: MetastasisM0,
	}
}

// Result holds the derived categories.
type Result struct {
	T     TCategory  `json:"t"`
	N     NCategory  `json:"n"`
	M     MCategory  `json:"m"`
	Stage StageGroup `json:"stage"`
}

// Classify runs the full pipeline on one set of inputs.
func Classify(in Inputs) Result {
	t := ComputeT(in.SizeCM, in.Invasions, in.Nodules)
	n := ComputeN(in.NodalInvolvement, in.MultipleN2Stations)
	m := ComputeM(in.Metastasis)
	return Result{T: t, N: n, M: m, Stage: ComputeStage(t, n, m)}
}

// Normalize returns a copy of in with the size clamped, the legacy nodule
// spelling mapped to its canonical code and the invasion and nodal sets
// de-duplicated in vocabulary order. Unknown identifiers are kept after the
// known ones so nothing the caller entered is silently dropped.
func Normalize(in Inputs) Inputs {
	out := in
	out.SizeCM = ClampSize(in.SizeCM)
	if out.Nodules == legacyDifferentIpsiLobe {
		out.Nodules = NoduleDifferentIpsilateralLobe
	}
	out.Invasions = normalizeSet(in.Invasions, InvasionSites)
	out.NodalInvolvement = normalizeSet(in.NodalInvolvement, NodalLevels)
	return out
}

func normalizeSet[T ~string](values []T, vocab []T) []T {
	rank := make(map[T]int, len(vocab))
	for i, v := range vocab {
		rank[v] = i
	}
	seen := make(map[T]bool, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i]]
		rj, jok := rank[out[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Record is a TNM classification: raw inputs plus the categories derived
// from them. The derived categories are only written by the record itself,
// always together with the inputs they were computed from. A zero Record
// derives its result from its (zero) inputs until the first update. A Record
// is not safe for concurrent use.
type Record struct {
	inputs     Inputs
	result     Result
	classified bool
}

// NewRecord returns a record holding DefaultInputs, already classified.
func NewRecord() *Record {
	return NewRecordFrom(DefaultInputs())
}

// NewRecordFrom returns a classified record for in.
func NewRecordFrom(in Inputs) *Record {
	r := &Record{}
	r.Update(func(dst *Inputs) { *dst = in })
	return r
}

// Inputs returns a copy of the raw inputs.
func (r *Record) Inputs() Inputs {
	in := r.inputs
	in.Invasions = append(make([]InvasionSite, 0, len(r.inputs.Invasions)), r.inputs.Invasions...)
	in.NodalInvolvement = append(make([]NodalLevel, 0, len(r.inputs.NodalInvolvement)), r.inputs.NodalInvolvement...)
	return in
}

func (r *Record) Result() Result {
	if !r.classified {
		return Classify(Normalize(r.inputs))
	}
	return r.result
}

func (r *Record) T() TCategory      { return r.Result().T }
func (r *Record) N() NCategory      { return r.Result().N }
func (r *Record) M() MCategory      { return r.Result().M }
func (r *Record) Stage() StageGroup { return r.Result().Stage }

func (r *Record) HasInvasion(s InvasionSite) bool {
	for _, i := range r.inputs.Invasions {
		if i == s {
			return true
		}
	}
	return false
}

// Update is the single mutation path: fn edits a copy of the inputs, which
// are then normalised and classified before inputs and result are replaced
// together.
func (r *Record) Update(fn func(*Inputs)) Result {
	in := r.Inputs()
	fn(&in)
	in = Normalize(in)
	res := Classify(in)
	r.inputs, r.result, r.classified = in, res, true
	return res
}

// Recompute reclassifies the current inputs. On a consistent record it is a
// no-op.
func (r *Record) Recompute() Result {
	return r.Update(func(*Inputs) {})
}

func (r *Record) SetSize(cm float64) Result {
	return r.Update(func(in *Inputs) { in.SizeCM = cm })
}

// SetInvasion adds or removes one invasion site.
func (r *Record) SetInvasion(site InvasionSite, present bool) Result {
	return r.Update(func(in *Inputs) {
		in.Invasions = toggle(in.Invasions, site, present)
	})
}

func (r *Record) SetInvasions(sites []InvasionSite) Result {
	return r.Update(func(in *Inputs) {
		in.Invasions = append([]InvasionSite(nil), sites...)
	})
}

func (r *Record) SetNodules(e NoduleExtent) Result {
	return r.Update(func(in *Inputs) { in.Nodules = e })
}

// SetNodalLevel adds or removes one nodal level.
func (r *Record) SetNodalLevel(level NodalLevel, present bool) Result {
	return r.Update(func(in *Inputs) {
		in.NodalInvolvement = toggle(in.NodalInvolvement, level, present)
	})
}

func (r *Record) SetNodalInvolvement(levels []NodalLevel) Result {
	return r.Update(func(in *Inputs) {
		in.NodalInvolvement = append([]NodalLevel(nil), levels...)
	})
}

func (r *Record) SetMultipleN2Stations(multiple bool) Result {
	return r.Update(func(in *Inputs) { in.MultipleN2Stations = multiple })
}

func (r *Record) SetMetastasis(p MetastasisPattern) Result {
	return r.Update(func(in *Inputs) { in.Metastasis = p })
}

func (r *Record) SetTumorLocation(s string) Result {
	return r.Update(func(in *Inputs) { in.TumorLocation = s })
}

func (r *Record) SetTumorDescription(s string) Result {
	return r.Update(func(in *Inputs) { in.TumorDescription = s })
}

func toggle[T comparable](values []T, v T, present bool) []T {
	out := make([]T, 0, len(values)+1)
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	if present {
		out = append(out, v)
	}
	return out
}

// Resolve returns a new record classified from r's inputs.
func Resolve(r Record) Record {
	return *NewRecordFrom(r.Inputs())
}

type recordJSON struct {
	Inputs
	Result
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{Inputs: r.Inputs(), Result: r.Result()})
}

// UnmarshalJSON reads the raw inputs only; derived fields in the payload are
// ignored and recomputed.
func (r *Record) UnmarshalJSON(data []byte) error {
	in := DefaultInputs()
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = *NewRecordFrom(in)
	return nil
}
