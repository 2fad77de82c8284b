// internal/workers/data-access/migrate-resources/config.go
package migrateresources

import "time"

type Config struct {
	Timeout time.Duration
	// Seed fixes the weight generator; zero seeds from the clock.
	Seed int64
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
