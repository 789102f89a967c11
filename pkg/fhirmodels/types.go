package fhirmodels

// Common FHIR value set constants used across the application.

// ConditionClinicalStatus values per FHIR R4.
const (
	ConditionClinicalActive    = "active"
	ConditionClinicalInactive  = "inactive"
	ConditionClinicalRemission = "remission"
)

// Code systems.
const (
	SystemConditionClinical = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	SystemICD10CM           = "http://hl7.org/fhir/sid/icd-10-cm"
	SystemCancerStaging     = "http://cancerstaging.org"
)

// ICD-10-CM code used for primary lung cancer conditions.
const (
	ICD10LungUnspecified        = "C34.90"
	ICD10LungUnspecifiedDisplay = "Malignant neoplasm of unspecified part of unspecified bronchus or lung"
)

// mCODE TNM category extensions.
const (
	MCODEPrimaryTumorCategory      = "http://hl7.org/fhir/us/mcode/StructureDefinition/tnm-primary-tumor-category"
	MCODERegionalNodesCategory     = "http://hl7.org/fhir/us/mcode/StructureDefinition/tnm-regional-nodes-category"
	MCODEDistantMetastasesCategory = "http://hl7.org/fhir/us/mcode/StructureDefinition/tnm-distant-metastases-category"
)
