// internal/workers/explorer/inspect-profile/config.go
package inspectprofile

import "time"

type Config struct {
	Timeout          time.Duration
	DefaultThreshold float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          10 * time.Second,
		DefaultThreshold: 0.5,
	}
}
