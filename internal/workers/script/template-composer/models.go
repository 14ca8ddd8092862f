// internal/workers/script/template-composer/models.go
package templatecomposer

import "voice-demo-generator/internal/models"

type Input struct {
	Context models.BusinessContext `json:"context"`
}

type Output struct {
	Lines  []models.DialogueLine `json:"lines"`
	Fields map[string]string     `json:"fields"`
}
