// internal/workers/script/context-resolver/models.go
package contextresolver

import "voice-demo-generator/internal/models"

type Input struct {
	Industry string `json:"industry"`
}

type Output struct {
	Context models.BusinessContext `json:"context"`
	Curated bool                   `json:"curated"`
}

// suffixRule maps industry keywords to a business-name suffix.
type suffixRule struct {
	suffix   string
	keywords []string
}

// suffixRules are checked in order; the first rule with a matching keyword wins.
var suffixRules = []suffixRule{
	{"Clinic", []string{"clinic", "doctor", "dentist", "chiropractor", "medical", "therapy"}},
	{"Studio", []string{"studio", "gym", "yoga", "dance", "martial"}},
	{"Shop", []string{"shop", "store", "bakery", "florist", "pharmacy"}},
	{"", []string{"restaurant", "cafe", "coffee", "bar", "pizza"}},
	{"Academy", []string{"school", "academy", "university", "college"}},
	{"Group", []string{"agency", "firm", "consultant"}},
}

const defaultSuffix = "Services"
