// internal/workers/vendor/dispatch-request/config.go
package dispatchrequest

import "time"

// Config holds the vendor routing table and dispatch settings.
type Config struct {
	Routes          map[string]string
	Timeout         time.Duration
	ValidatePayload bool
	PayloadSchema   map[string]interface{}
}

func LoadConfig() *Config {
	return &Config{
		Routes: map[string]string{
			"vendor_1": "https://api.vendor1.com/v1/",
			"vendor_2": "https://api.vendor2.com/v1/",
		},
		Timeout:         30 * time.Second,
		ValidatePayload: false,
	}
}
