// internal/common/aws/elbv2.go
package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
)

type ELBV2Client struct {
	client *elbv2.Client
}

func NewELBV2Client(ctx context.Context, region string) (*ELBV2Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &ELBV2Client{client: elbv2.NewFromConfig(cfg)}, nil
}

func (c *ELBV2Client) DescribeLoadBalancers(ctx context.Context, input *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	return c.client.DescribeLoadBalancers(ctx, input, optFns...)
}

func (c *ELBV2Client) ModifyTargetGroup(ctx context.Context, input *elbv2.ModifyTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.ModifyTargetGroupOutput, error) {
	return c.client.ModifyTargetGroup(ctx, input, optFns...)
}
