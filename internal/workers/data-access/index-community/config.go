// internal/workers/data-access/index-community/config.go
package indexcommunity

import "time"

type Config struct {
	Timeout          time.Duration
	DefaultThreshold float64
	Index            string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          30 * time.Second,
		DefaultThreshold: 0.5,
		Index:            "micro-communities",
	}
}
