package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ehr/tnmstage/internal/config"
	"github.com/ehr/tnmstage/internal/domain/staging"
)

func testConfig(output string) *config.Config {
	return &config.Config{
		Env:           "test",
		LogLevel:      "info",
		OutputFormat:  output,
		StagingSystem: staging.Edition,
	}
}

func execute(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg, zerolog.Nop())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassify_JSON(t *testing.T) {
	out, err := execute(t, testConfig("json"), "classify", "--size", "4.5", "--node", "n1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	want := map[string]string{"t": "T2b", "n": "N1", "m": "M0", "stage": "IIB"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("expected %s=%s, got %v", k, v, got[k])
		}
	}
}

func TestClassify_Text(t *testing.T) {
	out, err := execute(t, testConfig("json"), "classify",
		"--size", "6", "--invasion", "chest_wall", "--node", "n2", "--multiple-n2", "-o", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "T3") || !strings.Contains(out, "N2b") {
		t.Errorf("expected T3 and N2b in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Stage IIIB") {
		t.Errorf("expected Stage IIIB in output, got:\n%s", out)
	}
}

func TestClassify_NotAssessable(t *testing.T) {
	out, err := execute(t, testConfig("text"), "classify", "--invasion", "mediastinum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "TX") || !strings.Contains(out, "Stage cannot be determined") {
		t.Errorf("expected TX and undetermined stage, got:\n%s", out)
	}
}

func TestClassify_RejectsUnknownIdentifiers(t *testing.T) {
	if _, err := execute(t, testConfig("json"), "classify", "--size", "2", "--invasion", "liver"); err == nil {
		t.Error("expected error for unknown invasion")
	}
	if _, err := execute(t, testConfig("json"), "classify", "--size", "2", "--meta", "m2"); err == nil {
		t.Error("expected error for unknown metastasis pattern")
	}
	if _, err := execute(t, testConfig("json"), "classify", "-o", "yaml"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

const batchFile = `
cases:
  - patient_id: 0b7f5a0e-5f1e-4c39-8d7c-2b1a8e3f6c21
    diagnosis_date: "2025-03-14"
    tnm:
      size_cm: 4.5
      n_involvement: [n1]
  - patient_id: 9a2d4c1b-7e3f-4a8b-b6c5-1d2e3f4a5b6c
    diagnosis_date: "2025-04-02"
    tnm:
      meta_type: m1d
`

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write case file: %v", err)
	}
	return path
}

func TestBatch_JSON(t *testing.T) {
	path := writeBatchFile(t, batchFile)
	out, err := execute(t, testConfig("json"), "batch", path)
	if err == nil {
		t.Fatal("expected error reporting the failed case")
	}
	if !strings.Contains(err.Error(), "1 of 2 cases") {
		t.Errorf("unexpected error: %v", err)
	}

	var resources []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &resources); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
	if resources[0]["resourceType"] != "Condition" {
		t.Errorf("expected Condition first, got %v", resources[0]["resourceType"])
	}
	if resources[1]["resourceType"] != "OperationOutcome" {
		t.Errorf("expected OperationOutcome second, got %v", resources[1]["resourceType"])
	}
	if !strings.Contains(out, `"cases[1]"`) {
		t.Errorf("expected failed case expression, got:\n%s", out)
	}
}

func TestBatch_AllStaged(t *testing.T) {
	path := writeBatchFile(t, strings.SplitN(batchFile, "  - patient_id: 9a2d", 2)[0])
	out, err := execute(t, testConfig("text"), "batch", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Stage IIB") {
		t.Errorf("expected Stage IIB, got:\n%s", out)
	}
}

func TestBatch_MissingFile(t *testing.T) {
	if _, err := execute(t, testConfig("json"), "batch", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTable(t *testing.T) {
	out, err := execute(t, testConfig("text"), "table")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{staging.Edition, "IA1", "IIIC", "M1c2", "IVB"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table output", want)
		}
	}

	out, err = execute(t, testConfig("json"), "table")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		M0 map[string]map[string]string `json:"m0"`
		M1 map[string]string            `json:"m1"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if got.M0["N1"]["T2b"] != "IIB" {
		t.Errorf("expected N1/T2b = IIB, got %s", got.M0["N1"]["T2b"])
	}
	if got.M1["M1a"] != "IVA" {
		t.Errorf("expected M1a = IVA, got %s", got.M1["M1a"])
	}
}

func TestVocab(t *testing.T) {
	out, err := execute(t, testConfig("json"), "vocab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string][]vocabEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(got["invasions"]) != len(staging.InvasionSites) {
		t.Errorf("expected %d invasions, got %d", len(staging.InvasionSites), len(got["invasions"]))
	}
	if got["meta_type"][0].Code != "m0" {
		t.Errorf("expected m0 first, got %s", got["meta_type"][0].Code)
	}

	out, err = execute(t, testConfig("text"), "vocab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "different_ipsilateral_lobe") {
		t.Errorf("expected nodule vocabulary in output, got:\n%s", out)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(testConfig("json"), &buf)
	logger.Info().Str("stage", "IIB").Msg("staged")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
	if entry["stage"] != "IIB" {
		t.Errorf("expected stage field, got %v", entry)
	}

	buf.Reset()
	cfg := testConfig("json")
	cfg.Env = "development"
	logger = newLogger(cfg, &buf)
	logger.Info().Msg("staged")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "staged") {
		t.Errorf("expected console output in development, got %q", buf.String())
	}

	buf.Reset()
	cfg = testConfig("json")
	cfg.LogLevel = "warn"
	logger = newLogger(cfg, &buf)
	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
}

func TestClassify_FreeText(t *testing.T) {
	out, err := execute(t, testConfig("json"), "classify",
		"--size", "3", "--location", "right upper lobe", "--description", "spiculated mass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if got["tumor_location"] != "right upper lobe" {
		t.Errorf("expected tumor_location, got %v", got["tumor_location"])
	}
	if got["tumor_description"] != "spiculated mass" {
		t.Errorf("expected tumor_description, got %v", got["tumor_description"])
	}
}

func TestBatch_UndecodableFile(t *testing.T) {
	path := writeBatchFile(t, "cases:\n  - patient_id: x\n    stage: IIB\n")
	out, err := execute(t, testConfig("json"), "batch", path)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}

	var resources []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &resources); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(resources) != 1 || resources[0]["resourceType"] != "OperationOutcome" {
		t.Fatalf("expected one OperationOutcome, got %v", resources)
	}
	issue := resources[0]["issue"].([]interface{})[0].(map[string]interface{})
	if issue["code"] != "processing" {
		t.Errorf("expected processing issue, got %v", issue["code"])
	}

	out, err = execute(t, testConfig("text"), "batch", path)
	if err == nil || out != "" {
		t.Errorf("expected error and no text output, got %q / %v", out, err)
	}
}
