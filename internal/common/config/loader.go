// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "voice-demo-generator/internal/common/errors"
	"voice-demo-generator/internal/common/validation"
)

// DefaultSystemPrompt is sent ahead of every script request unless overridden.
const DefaultSystemPrompt = "You are an expert at writing natural, realistic dialogue for phone conversations. " +
	"Your conversations sound authentic with filler words, pauses, and natural speech patterns."

// Load searches the usual locations for config.yaml and merges config.{APP_ENVIRONMENT}.yaml on top.
func Load() (*Config, error) {
	return LoadWithOverrides("", nil)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides loads path, or searches the usual locations when path is empty, and
// applies overrides (dotted keys, e.g. "text_generation.enabled") before validation.
func LoadWithOverrides(path string, overrides map[string]interface{}) (*Config, error) {
	loadEnvFile()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigInvalidError(fmt.Errorf("failed to read config file %s: %w", path, err))
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../../configs")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, apperrors.NewConfigInvalidError(fmt.Errorf("error reading base config: %w", err))
			}
		}

		env := os.Getenv("APP_ENVIRONMENT")
		if env == "" {
			env = "development"
		}
		v.SetConfigName(fmt.Sprintf("config.%s", env))
		_ = v.MergeInConfig() // ignore error if not found
	}

	for key, val := range overrides {
		v.Set(key, val)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, apperrors.NewConfigInvalidError(fmt.Errorf("invalid configuration: %w", err))
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "voice-demo-generator")
	v.SetDefault("app.environment", "development")

	v.SetDefault("speech.base_url", "https://api.elevenlabs.io")
	v.SetDefault("speech.model_id", "eleven_multilingual_v2")
	v.SetDefault("speech.output_format", "mp3_44100_128")
	v.SetDefault("speech.timeout", 60000)

	v.SetDefault("text_generation.enabled", true)
	v.SetDefault("text_generation.provider", "openai")
	v.SetDefault("text_generation.model", "gpt-4o")
	v.SetDefault("text_generation.temperature", 0.9)
	v.SetDefault("text_generation.max_tokens", 1500)
	v.SetDefault("text_generation.timeout", 0)

	for _, role := range []string{"customer_settings", "receptionist_settings"} {
		v.SetDefault("voices."+role+".stability", 0.5)
		v.SetDefault("voices."+role+".similarity_boost", 0.75)
		v.SetDefault("voices."+role+".style", 0.0)
		v.SetDefault("voices."+role+".use_speaker_boost", true)
	}

	v.SetDefault("output.directory", "voice_demos")
	v.SetDefault("output.naming_convention", "{industry_slug}_demo.mp3")
	v.SetDefault("output.report_file", "generation_report.json")

	v.SetDefault("processing.rate_limit_delay", 1.0)
	v.SetDefault("processing.segment_delay", 0.5)
	v.SetDefault("processing.batch_size", 10)

	v.SetDefault("data.templates_path", "configs/conversation_templates.json")
	v.SetDefault("data.industries_path", "configs/industries.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("cache.redis.ttl", 7*24*3600)
	v.SetDefault("notifications.aws.region", "us-east-1")
	v.SetDefault("observability.service_name", "voice-demo-generator")
}

// loadEnvFile loads the first .env found near the working directory or module root.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // tests in test/e2e/
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} references in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			v.Set(key, os.ExpandEnv(strVal))
		}
	}
}

// Direct override if credentials are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Speech.APIKey == "" {
		if val := os.Getenv("ELEVENLABS_API_KEY"); val != "" {
			cfg.Speech.APIKey = val
		}
	}

	if cfg.TextGeneration.APIKey == "" {
		envKey := "OPENAI_API_KEY"
		if cfg.TextGeneration.Provider == "gemini" {
			envKey = "GEMINI_API_KEY"
		}
		if val := os.Getenv(envKey); val != "" {
			cfg.TextGeneration.APIKey = val
		}
	}

	if cfg.Cache.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Cache.Redis.Password = val
		}
	}
}

// applyDefaults fills values viper defaults cannot express
func applyDefaults(cfg *Config) {
	if cfg.TextGeneration.SystemPrompt == "" {
		cfg.TextGeneration.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 3
	}
	if cfg.Logging.MaxAgeDays == 0 {
		cfg.Logging.MaxAgeDays = 7
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if err := validation.ValidateStruct(validation.NewValidator(), cfg).Err(); err != nil {
		return err
	}

	if cfg.TextGeneration.Enabled && cfg.TextGeneration.APIKey == "" {
		return fmt.Errorf("text_generation.api_key is required when text generation is enabled")
	}
	if cfg.Notifications.SES.Enabled {
		if cfg.Notifications.SES.FromEmail == "" || len(cfg.Notifications.SES.ToEmails) == 0 {
			return fmt.Errorf("notifications.ses.from_email and to_emails are required when SES is enabled")
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
