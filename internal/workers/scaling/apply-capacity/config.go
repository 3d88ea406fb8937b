// internal/workers/scaling/apply-capacity/config.go
package applycapacity

import "time"

// Config holds the fixed scale-out target and resource names.
type Config struct {
	AutoScalingGroup    string
	DesiredCapacity     int32
	LoadBalancer        string
	LaunchConfiguration string
	TargetGroupARN      string
	HealthCheckPort     string
	Timeout             time.Duration
	NotifyTopicARN      string
}

func LoadConfig() *Config {
	return &Config{
		DesiredCapacity: 5,
		HealthCheckPort: "8080",
		Timeout:         30 * time.Second,
	}
}
