// internal/workers/script/script-generator/models.go
package scriptgenerator

import "voice-demo-generator/internal/models"

type Input struct {
	Industry         string `json:"industry"`
	ReceptionistName string `json:"receptionistName,omitempty"`
}

type Output struct {
	Script  *models.GeneratedScript `json:"script"`
	Context models.BusinessContext  `json:"context"`
}
