// internal/workers/expertise/compare-expertise/config.go
package compareexpertise

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
