// internal/workers/scaling/apply-capacity/models.go
package applycapacity

// Input optionally overrides the configured resource names. Capacity is not
// an input: the handler always applies the configured target.
type Input struct {
	AutoScalingGroup string `json:"autoScalingGroup,omitempty"`
	LoadBalancer     string `json:"loadBalancer,omitempty"`
}

// Output reports what was applied and to which resources.
type Output struct {
	AutoScalingGroup string `json:"autoScalingGroup"`
	DesiredCapacity  int32  `json:"desiredCapacity"`
	LoadBalancerARN  string `json:"loadBalancerArn"`
	LoadBalancerState string `json:"loadBalancerState,omitempty"`
	TargetGroupARN   string `json:"targetGroupArn"`
	HealthCheckPort  string `json:"healthCheckPort"`
	Notified         bool   `json:"notified"`
}
