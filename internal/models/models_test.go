package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	text := `Here is your script:

AI Receptionist: Thank you for calling Elite Dentists, this is Ava.
Customer: Hi... um, I need a cleaning.
(pause)
Customer:
AI Receptionist:   We have Tuesday at 10 AM.  `

	lines := ParseScript(text)
	require.Len(t, lines, 3)
	assert.Equal(t, RoleReceptionist, lines[0].Role)
	assert.Equal(t, "Hi... um, I need a cleaning.", lines[1].Text)
	assert.Equal(t, "We have Tuesday at 10 AM.", lines[2].Text)
	assert.Empty(t, ParseScript("no tags here\n\n"))
}

func TestRenderLines(t *testing.T) {
	lines := []DialogueLine{
		{Role: RoleCustomer, Text: "Hello?"},
		{Role: RoleReceptionist, Text: "Hi there."},
	}
	text := RenderLines(lines)
	assert.Equal(t, "Customer: Hello?\n\nAI Receptionist: Hi there.", text)
	assert.Equal(t, lines, ParseScript(text))
}

func TestRunReportJSON(t *testing.T) {
	report := NewRunReport(2)
	report.Add(ItemResult{Industry: "Dentists", Success: &ItemSuccess{
		Industry:           "Dentists",
		AudioArtifactPath:  "out/dentists_demo.mp3",
		ScriptArtifactPath: "out/dentists_script.txt",
	}})
	report.Add(ItemResult{Industry: "Law Firms", Err: errors.New("synthesis")})

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": [{"industry":"Dentists","audio_artifact_path":"out/dentists_demo.mp3","script_artifact_path":"out/dentists_script.txt"}],
		"failed": ["Law Firms"],
		"total": 2
	}`, string(data))

	empty, err := json.Marshal(NewRunReport(0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":[],"failed":[],"total":0}`, string(empty))
}
