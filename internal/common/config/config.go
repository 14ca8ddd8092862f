// internal/common/config/config.go
package config

import (
	"time"

	"voice-demo-generator/internal/models"
)

// Config is the main application configuration struct.
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Speech         SpeechConfig         `mapstructure:"speech"`
	TextGeneration TextGenerationConfig `mapstructure:"text_generation"`
	Voices         VoicesConfig         `mapstructure:"voices"`
	Conversation   ConversationConfig   `mapstructure:"conversation"`
	Output         OutputConfig         `mapstructure:"output"`
	Processing     ProcessingConfig     `mapstructure:"processing"`
	Data           DataConfig           `mapstructure:"data"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Notifications  NotificationConfig   `mapstructure:"notifications"`
	Observability  ObservabilityConfig  `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// SpeechConfig holds the ElevenLabs text-to-speech settings.
type SpeechConfig struct {
	APIKey       string `mapstructure:"api_key" validate:"required"`
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	ModelID      string `mapstructure:"model_id" validate:"required"`
	OutputFormat string `mapstructure:"output_format"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
}

// TextGenerationConfig holds settings for the script-writing model.
type TextGenerationConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Provider     string  `mapstructure:"provider" validate:"oneof=openai gemini"`
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"`
	Model        string  `mapstructure:"model" validate:"required"`
	Temperature  float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int     `mapstructure:"max_tokens" validate:"gte=1"`
	Timeout      int     `mapstructure:"timeout"` // milliseconds, 0 disables
	SystemPrompt string  `mapstructure:"system_prompt"`
}

type VoicesConfig struct {
	CustomerPool         []models.Voice       `mapstructure:"customer_pool" validate:"min=1,dive"`
	ReceptionistPool     []models.Voice       `mapstructure:"receptionist_pool" validate:"min=1,dive"`
	CustomerSettings     models.VoiceSettings `mapstructure:"customer_settings"`
	ReceptionistSettings models.VoiceSettings `mapstructure:"receptionist_settings"`
}

// ConversationConfig holds the parameters merged into template placeholders.
type ConversationConfig struct {
	CustomerNames []string `mapstructure:"customer_names" validate:"min=1"`
	PhoneNumber   string   `mapstructure:"phone_number" validate:"phone"`
	DayOptions    []string `mapstructure:"day_options" validate:"min=1"`
	TimeOptions   []string `mapstructure:"time_options" validate:"min=1"`
}

type OutputConfig struct {
	Directory        string `mapstructure:"directory" validate:"required"`
	NamingConvention string `mapstructure:"naming_convention" validate:"naming_convention"`
	ReportFile       string `mapstructure:"report_file" validate:"required"`
}

type ProcessingConfig struct {
	RateLimitDelay float64 `mapstructure:"rate_limit_delay" validate:"gte=0"` // seconds
	SegmentDelay   float64 `mapstructure:"segment_delay" validate:"gte=0"`    // seconds
	Seed           uint64  `mapstructure:"seed"`
	BatchSize      int     `mapstructure:"batch_size" validate:"gte=1"`
}

// DataConfig points at the JSON catalog files.
type DataConfig struct {
	TemplatesPath  string `mapstructure:"templates_path" validate:"required"`
	IndustriesPath string `mapstructure:"industries_path" validate:"required"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type CacheConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// NotificationConfig holds settings for the end-of-run summary.
type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn" validate:"required_if=Enabled true"`
	} `mapstructure:"sns"`
	SES struct {
		Enabled   bool     `mapstructure:"enabled"`
		FromEmail string   `mapstructure:"from_email" validate:"omitempty,email"`
		ToEmails  []string `mapstructure:"to_emails" validate:"dive,email"`
	} `mapstructure:"ses"`
}

type ObservabilityConfig struct {
	ServiceName string `mapstructure:"service_name"`
	MetricsFile string `mapstructure:"metrics_file"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	Tracing     struct {
		Enabled        bool   `mapstructure:"enabled"`
		JaegerEndpoint string `mapstructure:"jaeger_endpoint" validate:"required_if=Enabled true"`
	} `mapstructure:"tracing"`
}

// RateLimitDuration returns the pause after each batch item.
func (p ProcessingConfig) RateLimitDuration() time.Duration {
	return secondsToDuration(p.RateLimitDelay)
}

// SegmentDuration returns the pause between synthesized lines.
func (p ProcessingConfig) SegmentDuration() time.Duration {
	return secondsToDuration(p.SegmentDelay)
}

func (r RedisConfig) TTLDuration() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
