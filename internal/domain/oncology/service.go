package oncology

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/tnmstage/internal/domain/staging"
)

type Service struct {
	logger        zerolog.Logger
	stagingSystem string
	now           func() time.Time
}

func NewService(logger zerolog.Logger, stagingSystem string) *Service {
	if stagingSystem == "" {
		stagingSystem = staging.Edition
	}
	return &Service{
		logger:        logger.With().Str("component", "oncology").Logger(),
		stagingSystem: stagingSystem,
		now:           time.Now,
	}
}

var validCancerStatuses = map[string]bool{
	"active-treatment": true, "surveillance": true, "remission": true,
	"progression": true, "deceased": true, "lost-to-followup": true,
}

var validLateralities = map[string]bool{
	"left": true, "right": true, "bilateral": true, "unknown": true,
}

// OpenCase creates a diagnosis with a default, already classified TNM record.
func (s *Service) OpenCase(patientID uuid.UUID, diagnosisDate time.Time) (*CancerDiagnosis, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if diagnosisDate.IsZero() {
		return nil, fmt.Errorf("diagnosis_date is required")
	}
	now := s.now()
	d := &CancerDiagnosis{
		ID:            uuid.New(),
		PatientID:     patientID,
		DiagnosisDate: diagnosisDate,
		StagingSystem: s.stagingSystem,
		CurrentStatus: "active-treatment",
		Staging:       *staging.NewRecord(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.logger.Debug().
		Str("diagnosis_id", d.ID.String()).
		Str("patient_id", patientID.String()).
		Msg("case opened")
	return d, nil
}

// TnmEdit is a partial update of the raw TNM findings. Nil fields are left
// unchanged.
type TnmEdit struct {
	SizeCM             *float64  `json:"size_cm,omitempty" yaml:"size_cm,omitempty"`
	Invasions          *[]string `json:"invasions,omitempty" yaml:"invasions,omitempty"`
	Nodules            *string   `json:"nodules,omitempty" yaml:"nodules,omitempty"`
	NodalInvolvement   *[]string `json:"n_involvement,omitempty" yaml:"n_involvement,omitempty"`
	MultipleN2Stations *bool     `json:"is_multiple_n2_stations,omitempty" yaml:"is_multiple_n2_stations,omitempty"`
	Metastasis         *string   `json:"meta_type,omitempty" yaml:"meta_type,omitempty"`
	TumorLocation      *string   `json:"tumor_location,omitempty" yaml:"tumor_location,omitempty"`
	TumorDescription   *string   `json:"tumor_description,omitempty" yaml:"tumor_description,omitempty"`
}

// parsed holds the validated form of an edit.
type parsed struct {
	invasions []staging.InvasionSite
	nodules   staging.NoduleExtent
	levels    []staging.NodalLevel
	meta      staging.MetastasisPattern
}

func (e TnmEdit) parse() (parsed, error) {
	var p parsed
	if e.SizeCM != nil && *e.SizeCM < 0 {
		return p, fmt.Errorf("size_cm must not be negative")
	}
	if e.Invasions != nil {
		for _, v := range *e.Invasions {
			site, err := staging.ParseInvasionSite(v)
			if err != nil {
				return p, err
			}
			p.invasions = append(p.invasions, site)
		}
	}
	if e.Nodules != nil {
		n, err := staging.ParseNoduleExtent(*e.Nodules)
		if err != nil {
			return p, err
		}
		p.nodules = n
	}
	if e.NodalInvolvement != nil {
		for _, v := range *e.NodalInvolvement {
			l, err := staging.ParseNodalLevel(v)
			if err != nil {
				return p, err
			}
			p.levels = append(p.levels, l)
		}
	}
	if e.Metastasis != nil {
		m, err := staging.ParseMetastasisPattern(*e.Metastasis)
		if err != nil {
			return p, err
		}
		p.meta = m
	}
	return p, nil
}

func (e TnmEdit) apply(in *staging.Inputs, p parsed) {
	if e.SizeCM != nil {
		in.SizeCM = *e.SizeCM
	}
	if e.Invasions != nil {
		in.Invasions = p.invasions
	}
	if e.Nodules != nil {
		in.Nodules = p.nodules
	}
	if e.NodalInvolvement != nil {
		in.NodalInvolvement = p.levels
	}
	if e.MultipleN2Stations != nil {
		in.MultipleN2Stations = *e.MultipleN2Stations
	}
	if e.Metastasis != nil {
		in.Metastasis = p.meta
	}
	if e.TumorLocation != nil {
		in.TumorLocation = *e.TumorLocation
	}
	if e.TumorDescription != nil {
		in.TumorDescription = *e.TumorDescription
	}
}

// Stage classifies an edit applied to default inputs without opening a case.
func (s *Service) Stage(e TnmEdit) (*staging.Record, error) {
	p, err := e.parse()
	if err != nil {
		return nil, err
	}
	r := staging.NewRecord()
	res := r.Update(func(in *staging.Inputs) { e.apply(in, p) })
	s.logger.Debug().
		Str("t", string(res.T)).
		Str("n", string(res.N)).
		Str("m", string(res.M)).
		Str("stage", string(res.Stage)).
		Msg("tnm classified")
	return r, nil
}

// ApplyEdit validates the edit and applies it to the diagnosis' TNM record
// in a single recomputation. Nothing is applied when validation fails.
func (s *Service) ApplyEdit(d *CancerDiagnosis, e TnmEdit) error {
	if d == nil {
		return fmt.Errorf("diagnosis is required")
	}
	p, err := e.parse()
	if err != nil {
		return err
	}

	res := d.Staging.Update(func(in *staging.Inputs) { e.apply(in, p) })
	d.UpdatedAt = s.now()

	s.logger.Debug().
		Str("diagnosis_id", d.ID.String()).
		Str("t", string(res.T)).
		Str("n", string(res.N)).
		Str("m", string(res.M)).
		Str("stage", string(res.Stage)).
		Msg("tnm restaged")
	return nil
}

func (s *Service) UpdateStatus(d *CancerDiagnosis, status string) error {
	if d == nil {
		return fmt.Errorf("diagnosis is required")
	}
	if !validCancerStatuses[status] {
		return fmt.Errorf("invalid current_status: %s", status)
	}
	d.CurrentStatus = status
	d.UpdatedAt = s.now()
	return nil
}

// SetSite records the primary site and laterality.
func (s *Service) SetSite(d *CancerDiagnosis, site, laterality string) error {
	if d == nil {
		return fmt.Errorf("diagnosis is required")
	}
	if laterality != "" && !validLateralities[laterality] {
		return fmt.Errorf("invalid laterality: %s", laterality)
	}
	if site != "" {
		d.CancerSite = &site
	}
	if laterality != "" {
		d.Laterality = &laterality
	}
	d.UpdatedAt = s.now()
	return nil
}
