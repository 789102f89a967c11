package oncology

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ehr/tnmstage/internal/domain/staging"
	"github.com/ehr/tnmstage/internal/platform/fhir"
	"github.com/ehr/tnmstage/pkg/fhirmodels"
)

// CancerDiagnosis is a lung cancer diagnosis carrying its TNM classification.
// The T, N, M and stage group are read from the embedded record and cannot be
// set directly.
type CancerDiagnosis struct {
	ID               uuid.UUID      `json:"id"`
	PatientID        uuid.UUID      `json:"patient_id"`
	DiagnosisDate    time.Time      `json:"diagnosis_date"`
	CancerSite       *string        `json:"cancer_site,omitempty"`
	Laterality       *string        `json:"laterality,omitempty"`
	HistologyCode    *string        `json:"histology_code,omitempty"`
	HistologyDisplay *string        `json:"histology_display,omitempty"`
	StagingSystem    string         `json:"staging_system"`
	CurrentStatus    string         `json:"current_status"`
	Staging          staging.Record `json:"tnm"`
	Note             *string        `json:"note,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// UnmarshalJSON starts from a default staged record, so a payload without a
// "tnm" object decodes to an unmeasured case rather than empty codes.
func (d *CancerDiagnosis) UnmarshalJSON(data []byte) error {
	type alias CancerDiagnosis
	a := alias{Staging: *staging.NewRecord()}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = CancerDiagnosis(a)
	return nil
}

func (d *CancerDiagnosis) TStage() staging.TCategory      { return d.Staging.T() }
func (d *CancerDiagnosis) NStage() staging.NCategory      { return d.Staging.N() }
func (d *CancerDiagnosis) MStage() staging.MCategory      { return d.Staging.M() }
func (d *CancerDiagnosis) StageGroup() staging.StageGroup { return d.Staging.Stage() }

// ToFHIR renders the diagnosis as a FHIR R4 Condition with its stage.
func (d *CancerDiagnosis) ToFHIR() map[string]interface{} {
	res := d.Staging.Result()
	result := map[string]interface{}{
		"resourceType": "Condition",
		"id":           d.ID.String(),
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System: fhirmodels.SystemConditionClinical,
				Code:   clinicalStatus(d.CurrentStatus),
			}},
		},
		"code": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System:  fhirmodels.SystemICD10CM,
				Code:    fhirmodels.ICD10LungUnspecified,
				Display: fhirmodels.ICD10LungUnspecifiedDisplay,
			}},
			Text: strVal(d.HistologyDisplay),
		},
		"subject": fhir.Reference{Reference: fhir.FormatReference("Patient", d.PatientID.String())},
		"stage": []map[string]interface{}{{
			"summary": fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhirmodels.SystemCancerStaging,
					Code:    string(res.Stage),
					Display: res.Stage.Label(),
				}},
			},
			"type": fhir.CodeableConcept{Text: d.StagingSystem},
			"extension": []fhir.Extension{
				{URL: fhirmodels.MCODEPrimaryTumorCategory, ValueCode: string(res.T)},
				{URL: fhirmodels.MCODERegionalNodesCategory, ValueCode: string(res.N)},
				{URL: fhirmodels.MCODEDistantMetastasesCategory, ValueCode: string(res.M)},
			},
		}},
		"onsetDateTime": d.DiagnosisDate.Format(time.RFC3339),
		"meta":          fhir.Meta{LastUpdated: d.UpdatedAt},
	}
	if d.CancerSite != nil {
		site := fhir.CodeableConcept{Text: *d.CancerSite}
		if d.Laterality != nil {
			site.Text = *d.Laterality + " " + *d.CancerSite
		}
		result["bodySite"] = []fhir.CodeableConcept{site}
	}
	if d.Note != nil {
		result["note"] = []map[string]string{{"text": *d.Note}}
	}
	return result
}

func clinicalStatus(status string) string {
	switch status {
	case "remission":
		return fhirmodels.ConditionClinicalRemission
	case "deceased":
		return fhirmodels.ConditionClinicalInactive
	default:
		return fhirmodels.ConditionClinicalActive
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
