// internal/workers/script/template-composer/config.go
package templatecomposer

import "voice-demo-generator/internal/common/config"

type Config struct {
	CustomerNames []string
	PhoneNumber   string
	DayOptions    []string
	TimeOptions   []string
}

func LoadConfig(conv config.ConversationConfig) *Config {
	return &Config{
		CustomerNames: conv.CustomerNames,
		PhoneNumber:   conv.PhoneNumber,
		DayOptions:    conv.DayOptions,
		TimeOptions:   conv.TimeOptions,
	}
}
