// internal/workers/script/context-resolver/config.go
package contextresolver

// DefaultPrefixes are the marketing words used to name synthesized businesses.
var DefaultPrefixes = []string{"City", "Elite", "Premier", "Advanced", "Total", "Modern", "Expert", "Quality"}

type Config struct {
	Prefixes []string
}

func LoadConfig() *Config {
	return &Config{
		Prefixes: DefaultPrefixes,
	}
}
