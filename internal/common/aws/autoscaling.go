// internal/common/aws/autoscaling.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
)

type AutoScalingClient struct {
	client *autoscaling.Client
}

func NewAutoScalingClient(ctx context.Context, region string) (*AutoScalingClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &AutoScalingClient{client: autoscaling.NewFromConfig(cfg)}, nil
}

func (c *AutoScalingClient) SetDesiredCapacity(ctx context.Context, input *autoscaling.SetDesiredCapacityInput, optFns ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error) {
	return c.client.SetDesiredCapacity(ctx, input, optFns...)
}
