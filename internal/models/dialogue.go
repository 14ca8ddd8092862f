// internal/models/dialogue.go
package models

import "strings"

type SpeakerRole string

const (
	RoleCustomer     SpeakerRole = "Customer"
	RoleReceptionist SpeakerRole = "AI Receptionist"
)

// Tag is the line prefix used in script text, e.g. "Customer:".
func (r SpeakerRole) Tag() string {
	return string(r) + ":"
}

type DialogueLine struct {
	Role SpeakerRole `json:"role"`
	Text string      `json:"text"`
}

func (l DialogueLine) String() string {
	return l.Role.Tag() + " " + l.Text
}

// ScriptSource tells which path produced a script.
type ScriptSource string

const (
	ScriptGenerated ScriptSource = "generated"
	ScriptComposed  ScriptSource = "composed"
)

// GeneratedScript is the output of script generation: either text produced by the
// text-generation service or lines composed from templates after a fallback.
type GeneratedScript struct {
	Source         ScriptSource   `json:"source"`
	Text           string         `json:"text"`
	Lines          []DialogueLine `json:"lines"`
	FallbackReason string         `json:"fallbackReason,omitempty"`
}

func (s *GeneratedScript) IsComposed() bool {
	return s.Source == ScriptComposed
}

// RenderLines joins lines as "Role: text" separated by a blank line.
func RenderLines(lines []DialogueLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, "\n\n")
}

// ParseScript keeps lines starting with a speaker tag, in order.
// Blank and untagged lines are dropped.
func ParseScript(text string) []DialogueLine {
	var lines []DialogueLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		for _, role := range []SpeakerRole{RoleCustomer, RoleReceptionist} {
			if strings.HasPrefix(line, role.Tag()) {
				body := strings.TrimSpace(strings.TrimPrefix(line, role.Tag()))
				if body != "" {
					lines = append(lines, DialogueLine{Role: role, Text: body})
				}
				break
			}
		}
	}
	return lines
}
