package oncology

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CaseInput is one case in an import file.
type CaseInput struct {
	ID            string  `yaml:"id"`
	PatientID     string  `yaml:"patient_id"`
	DiagnosisDate string  `yaml:"diagnosis_date"`
	CancerSite    string  `yaml:"cancer_site"`
	Laterality    string  `yaml:"laterality"`
	Histology     string  `yaml:"histology"`
	Note          string  `yaml:"note"`
	TNM           TnmEdit `yaml:"tnm"`
}

type caseFile struct {
	Cases []CaseInput `yaml:"cases"`
}

// ImportCases decodes a YAML case file.
func ImportCases(r io.Reader) ([]CaseInput, error) {
	var f caseFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode case file: %w", err)
	}
	return f.Cases, nil
}

// CaseError reports why one imported case could not be staged.
type CaseError struct {
	Index int
	ID    string
	Err   error
}

func (e *CaseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("case %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("case %d: %v", e.Index, e.Err)
}

func (e *CaseError) Unwrap() error { return e.Err }

// StageCases opens and stages every imported case. A failing case is
// reported in the returned errors and does not stop the others.
func (s *Service) StageCases(cases []CaseInput) ([]*CancerDiagnosis, []*CaseError) {
	var (
		staged []*CancerDiagnosis
		failed []*CaseError
	)
	for i, c := range cases {
		d, err := s.stageCase(c)
		if err != nil {
			ce := &CaseError{Index: i, ID: c.ID, Err: err}
			s.logger.Warn().Err(err).Int("index", i).Str("case_id", c.ID).Msg("case not staged")
			failed = append(failed, ce)
			continue
		}
		staged = append(staged, d)
	}
	return staged, failed
}

func (s *Service) stageCase(c CaseInput) (*CancerDiagnosis, error) {
	patientID, err := uuid.Parse(c.PatientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient_id: %w", err)
	}
	var date time.Time
	if c.DiagnosisDate != "" {
		date, err = time.Parse("2006-01-02", c.DiagnosisDate)
		if err != nil {
			return nil, fmt.Errorf("invalid diagnosis_date: %w", err)
		}
	}
	d, err := s.OpenCase(patientID, date)
	if err != nil {
		return nil, err
	}
	if c.ID != "" {
		id, err := uuid.Parse(c.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}
		d.ID = id
	}
	if err := s.SetSite(d, c.CancerSite, c.Laterality); err != nil {
		return nil, err
	}
	if c.Histology != "" {
		h := c.Histology
		d.HistologyDisplay = &h
	}
	if c.Note != "" {
		n := c.Note
		d.Note = &n
	}
	if err := s.ApplyEdit(d, c.TNM); err != nil {
		return nil, err
	}
	return d, nil
}
