// internal/workers/communication/notify-community/config.go
package notifycommunity

import "time"

type Config struct {
	Timeout          time.Duration
	DefaultThreshold float64
	// Recipients receive the SES summary unless the job names its own.
	Recipients []string
	// MaxListed caps how many members the message body names.
	MaxListed int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          30 * time.Second,
		DefaultThreshold: 0.5,
		MaxListed:        25,
	}
}
