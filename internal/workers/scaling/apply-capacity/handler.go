// internal/workers/scaling/apply-capacity/handler.go
package applycapacity

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"platform-workers/internal/common/aws"
	"platform-workers/internal/common/errors"
	"platform-workers/internal/common/logger"
)

const (
	TaskType = "apply-capacity"
)

// AutoScalingAPI is the slice of the Auto Scaling service the handler uses.
type AutoScalingAPI interface {
	SetDesiredCapacity(ctx context.Context, input *autoscaling.SetDesiredCapacityInput, optFns ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error)
}

// ELBV2API is the slice of the load balancing service the handler uses.
type ELBV2API interface {
	DescribeLoadBalancers(ctx context.Context, input *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	ModifyTargetGroup(ctx context.Context, input *elbv2.ModifyTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.ModifyTargetGroupOutput, error)
}

// Notifier publishes a scale-out notification. Optional.
type Notifier interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config      *Config
	autoscaling AutoScalingAPI
	elb         ELBV2API
	notifier    Notifier
	logger      logger.Logger
}

func NewHandler(config *Config, asClient AutoScalingAPI, elbClient ELBV2API, notifier Notifier, log logger.Logger) *Handler {
	return &Handler{
		config:      config,
		autoscaling: asClient,
		elb:         elbClient,
		notifier:    notifier,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute applies the configured desired capacity to the scaling group and
// adjusts the health check port on the associated target group. The desired
// capacity is written unconditionally; current capacity is never read.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	groupName := h.config.AutoScalingGroup
	if input != nil && input.AutoScalingGroup != "" {
		groupName = input.AutoScalingGroup
	}
	lbName := h.config.LoadBalancer
	if input != nil && input.LoadBalancer != "" {
		lbName = input.LoadBalancer
	}

	log := h.logger.WithFields(map[string]interface{}{
		"autoScalingGroup": groupName,
		"loadBalancer":     lbName,
	})

	log.Info("applying desired capacity", map[string]interface{}{
		"desiredCapacity": h.config.DesiredCapacity,
	})

	_, err := h.autoscaling.SetDesiredCapacity(ctx, &autoscaling.SetDesiredCapacityInput{
		AutoScalingGroupName: sdkaws.String(groupName),
		DesiredCapacity:      sdkaws.Int32(h.config.DesiredCapacity),
		HonorCooldown:        sdkaws.Bool(false),
	})
	if err != nil {
		return nil, h.classifyCloudError("SetDesiredCapacity", err)
	}

	describeOut, err := h.elb.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		Names: []string{lbName},
	})
	if err != nil {
		return nil, h.classifyCloudError("DescribeLoadBalancers", err)
	}
	if len(describeOut.LoadBalancers) == 0 {
		return nil, errors.NewResourceNotFoundError("load balancer", fmt.Sprintf("name: %s", lbName))
	}

	lb := describeOut.LoadBalancers[0]
	lbARN := sdkaws.ToString(lb.LoadBalancerArn)
	lbState := ""
	if lb.State != nil {
		lbState = string(lb.State.Code)
	}
	log.Info("load balancer resolved", map[string]interface{}{
		"loadBalancerArn": lbARN,
		"state":           lbState,
	})

	// TODO: confirm with the infrastructure team whether the target group
	// modification was ever observed to take effect. Without the explicit
	// target_group_arn setting this passes the load balancer's ARN, which
	// is not a target group ARN.
	targetGroupARN := h.config.TargetGroupARN
	if targetGroupARN == "" {
		targetGroupARN = lbARN
	}

	_, err = h.elb.ModifyTargetGroup(ctx, &elbv2.ModifyTargetGroupInput{
		TargetGroupArn:  sdkaws.String(targetGroupARN),
		HealthCheckPort: sdkaws.String(h.config.HealthCheckPort),
	})
	if err != nil {
		return nil, h.classifyCloudError("ModifyTargetGroup", err)
	}

	output := &Output{
		AutoScalingGroup:  groupName,
		DesiredCapacity:   h.config.DesiredCapacity,
		LoadBalancerARN:   lbARN,
		LoadBalancerState: lbState,
		TargetGroupARN:    targetGroupARN,
		HealthCheckPort:   h.config.HealthCheckPort,
	}

	if h.notifier != nil && h.config.NotifyTopicARN != "" {
		message := fmt.Sprintf("Scaled %s to %d instances", groupName, h.config.DesiredCapacity)
		if _, err := h.notifier.Publish(ctx, &sns.PublishInput{
			TopicArn: sdkaws.String(h.config.NotifyTopicARN),
			Subject:  sdkaws.String("Capacity change applied"),
			Message:  sdkaws.String(message),
		}); err != nil {
			// Notification failure does not undo the scaling work.
			log.WithError(err).Warn("scale-out notification failed", nil)
		} else {
			output.Notified = true
		}
	}

	log.Info("capacity change applied", map[string]interface{}{
		"desiredCapacity": h.config.DesiredCapacity,
		"targetGroupArn":  targetGroupARN,
	})
	return output, nil
}

func (h *Handler) classifyCloudError(operation string, err error) error {
	if aws.IsCredentialsError(err) {
		return errors.NewAuthenticationFailedError(err.Error())
	}
	return errors.NewCloudAPIError(operation, err)
}
