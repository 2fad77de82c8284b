// internal/workers/expertise/score-expertise/config.go
package scoreexpertise

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
