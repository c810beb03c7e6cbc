package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCommand_Seed(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "text").CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Equal(t, builder.ToText(builder.NewDefaultState())+"\n", string(output))
}

func TestTextCommand_OutputFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outputFile := filepath.Join(t.TempDir(), "resume.txt")

	output, err := exec.Command(binaryPath, "text", "--out", outputFile).CombinedOutput()
	require.NoError(t, err, string(output))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, builder.ToText(builder.NewDefaultState()), string(data))
}

func TestApplyTemplateCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outputFile := filepath.Join(t.TempDir(), "state.json")

	output, err := exec.Command(binaryPath, "apply-template", "--key", "student", "--out", outputFile).CombinedOutput()
	require.NoError(t, err, string(output))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var state types.BuilderState
	require.NoError(t, json.Unmarshal(data, &state))

	tmpl, err := templates.Lookup("student")
	require.NoError(t, err)
	assert.Equal(t, tmpl.Skills, state.Skills)
	assert.Equal(t, tmpl.Headline, state.Personal.Headline)
}

func TestApplyTemplateCommand_MissingKeyFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "apply-template").CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"key\" not set")
}

func TestApplyTemplateCommand_UnknownKey(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "apply-template", "--key", "astronaut").CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "astronaut")
}

func TestTemplatesCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "templates").CombinedOutput()
	require.NoError(t, err, string(output))
	for _, tmpl := range templates.All() {
		assert.Contains(t, string(output), tmpl.Key)
	}
	assert.Contains(t, string(output), "* "+templates.DefaultKey)
}

func TestClassifyCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tests := []struct {
		score string
		label string
	}{
		{"12", "Poor"},
		{"40", "Fair"},
		{"79.9", "Good"},
		{"100", "Excellent"},
	}
	for _, tt := range tests {
		output, err := exec.Command(binaryPath, "classify", "--score", tt.score).CombinedOutput()
		require.NoError(t, err, string(output))
		assert.True(t, strings.HasPrefix(string(output), tt.label), "score %s: %s", tt.score, output)
	}
}

func TestInsightsCommand_JSON(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "insights", "--json").CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "\"ruleSetVersion\"")
}

func TestAnalyzeCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"atsScore": 83, "keywordsNeeded": ["Terraform"], "insights": [{"title": "Keywords", "severity": "high", "items": ["Add Terraform"]}]}`))
	}))
	defer server.Close()

	outputFile := filepath.Join(t.TempDir(), "report.json")
	cmd := exec.Command(binaryPath, "analyze", "--analyzer-url", server.URL, "--out", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))

	assert.Contains(t, string(output), "Excellent")
	assert.Contains(t, string(output), "Add Terraform")
	_, err = os.Stat(outputFile)
	assert.NoError(t, err)
}

func TestAnalyzeCommand_ServiceError(t *testing.T) {
	binaryPath := getBinaryPath(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "model warming up"}`))
	}))
	defer server.Close()

	output, err := exec.Command(binaryPath, "analyze", "--analyzer-url", server.URL).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "model warming up")
}

func TestValidateCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()

	data, err := json.Marshal(builder.NewDefaultState())
	require.NoError(t, err)
	valid := writeFile(t, dir, "state.json", string(data))
	invalid := writeFile(t, dir, "partial.json", `{"skills": []}`)

	output, err := exec.Command(binaryPath, "validate", "--kind", "builder-state", "--json", valid).CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Validation passed")

	schemaPath := filepath.Join("..", "..", "schemas", "builder_state.schema.json")
	output, err = exec.Command(binaryPath, "validate", "--schema", schemaPath, "--json", invalid).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "Validation failed")
	if exitError, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitError.ExitCode(), "should exit with code 1 on validation failure")
	}
}
