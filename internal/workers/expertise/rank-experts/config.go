// internal/workers/expertise/rank-experts/config.go
package rankexperts

import "time"

type Config struct {
	Timeout          time.Duration
	DefaultThreshold float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          15 * time.Second,
		DefaultThreshold: 0.5,
	}
}
