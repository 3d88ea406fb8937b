// internal/workers/scaling/apply-capacity/handler_test.go
package applycapacity

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commonerrors "platform-workers/internal/common/errors"
	"platform-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type mockAutoScaling struct {
	mock.Mock
}

func (m *mockAutoScaling) SetDesiredCapacity(ctx context.Context, input *autoscaling.SetDesiredCapacityInput, optFns ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*autoscaling.SetDesiredCapacityOutput), args.Error(1)
}

type mockELBV2 struct {
	mock.Mock
}

func (m *mockELBV2) DescribeLoadBalancers(ctx context.Context, input *elbv2.DescribeLoadBalancersInput, optFns ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elbv2.DescribeLoadBalancersOutput), args.Error(1)
}

func (m *mockELBV2) ModifyTargetGroup(ctx context.Context, input *elbv2.ModifyTargetGroupInput, optFns ...func(*elbv2.Options)) (*elbv2.ModifyTargetGroupOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elbv2.ModifyTargetGroupOutput), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.PublishOutput), args.Error(1)
}

func createTestConfig() *Config {
	return &Config{
		AutoScalingGroup: "app-asg",
		DesiredCapacity:  5,
		LoadBalancer:     "app-lb",
		HealthCheckPort:  "8080",
		Timeout:          10 * time.Second,
	}
}

func describeOutputWith(arn string) *elbv2.DescribeLoadBalancersOutput {
	return &elbv2.DescribeLoadBalancersOutput{
		LoadBalancers: []elbv2types.LoadBalancer{
			{
				LoadBalancerArn:  sdkaws.String(arn),
				LoadBalancerName: sdkaws.String("app-lb"),
				State:            &elbv2types.LoadBalancerState{Code: elbv2types.LoadBalancerStateEnumActive},
			},
		},
	}
}

const testLBARN = "arn:aws:elasticloadbalancing:us-east-1:123456789012:loadbalancer/app/app-lb/50dc6c495c0c9188"

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_AppliesConfiguredCapacity(t *testing.T) {
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	// The desired capacity is written without reading the current value.
	asMock.On("SetDesiredCapacity", mock.Anything, mock.MatchedBy(func(in *autoscaling.SetDesiredCapacityInput) bool {
		return sdkaws.ToString(in.AutoScalingGroupName) == "app-asg" &&
			sdkaws.ToInt32(in.DesiredCapacity) == 5
	})).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)

	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.MatchedBy(func(in *elbv2.DescribeLoadBalancersInput) bool {
		return len(in.Names) == 1 && in.Names[0] == "app-lb"
	})).Return(describeOutputWith(testLBARN), nil)

	elbMock.On("ModifyTargetGroup", mock.Anything, mock.Anything).Return(&elbv2.ModifyTargetGroupOutput{}, nil)

	handler := NewHandler(createTestConfig(), asMock, elbMock, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, "app-asg", output.AutoScalingGroup)
	assert.Equal(t, int32(5), output.DesiredCapacity)
	assert.Equal(t, testLBARN, output.LoadBalancerARN)
	assert.Equal(t, "active", output.LoadBalancerState)
	assert.Equal(t, "8080", output.HealthCheckPort)

	asMock.AssertExpectations(t)
	elbMock.AssertExpectations(t)
}

func TestHandler_Execute_TargetGroupUsesLoadBalancerARN(t *testing.T) {
	// Without an explicit target_group_arn the load balancer's ARN is
	// forwarded to ModifyTargetGroup as-is.
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	asMock.On("SetDesiredCapacity", mock.Anything, mock.Anything).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)
	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.Anything).Return(describeOutputWith(testLBARN), nil)
	elbMock.On("ModifyTargetGroup", mock.Anything, mock.MatchedBy(func(in *elbv2.ModifyTargetGroupInput) bool {
		return sdkaws.ToString(in.TargetGroupArn) == testLBARN &&
			sdkaws.ToString(in.HealthCheckPort) == "8080"
	})).Return(&elbv2.ModifyTargetGroupOutput{}, nil)

	handler := NewHandler(createTestConfig(), asMock, elbMock, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, testLBARN, output.TargetGroupARN)
	elbMock.AssertExpectations(t)
}

func TestHandler_Execute_ExplicitTargetGroupARN(t *testing.T) {
	tgARN := "arn:aws:elasticloadbalancing:us-east-1:123456789012:targetgroup/app-tg/73e2d6bc24d8a067"

	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	asMock.On("SetDesiredCapacity", mock.Anything, mock.Anything).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)
	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.Anything).Return(describeOutputWith(testLBARN), nil)
	elbMock.On("ModifyTargetGroup", mock.Anything, mock.MatchedBy(func(in *elbv2.ModifyTargetGroupInput) bool {
		return sdkaws.ToString(in.TargetGroupArn) == tgARN
	})).Return(&elbv2.ModifyTargetGroupOutput{}, nil)

	cfg := createTestConfig()
	cfg.TargetGroupARN = tgARN
	handler := NewHandler(cfg, asMock, elbMock, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, tgARN, output.TargetGroupARN)
	elbMock.AssertExpectations(t)
}

func TestHandler_Execute_InputOverridesResourceNames(t *testing.T) {
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	asMock.On("SetDesiredCapacity", mock.Anything, mock.MatchedBy(func(in *autoscaling.SetDesiredCapacityInput) bool {
		return sdkaws.ToString(in.AutoScalingGroupName) == "other-asg"
	})).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)
	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.MatchedBy(func(in *elbv2.DescribeLoadBalancersInput) bool {
		return len(in.Names) == 1 && in.Names[0] == "other-lb"
	})).Return(describeOutputWith(testLBARN), nil)
	elbMock.On("ModifyTargetGroup", mock.Anything, mock.Anything).Return(&elbv2.ModifyTargetGroupOutput{}, nil)

	handler := NewHandler(createTestConfig(), asMock, elbMock, nil, logger.NewTestLogger(t))
	_, err := handler.Execute(context.Background(), &Input{
		AutoScalingGroup: "other-asg",
		LoadBalancer:     "other-lb",
	})

	require.NoError(t, err)
	asMock.AssertExpectations(t)
	elbMock.AssertExpectations(t)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_LoadBalancerNotFound(t *testing.T) {
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	asMock.On("SetDesiredCapacity", mock.Anything, mock.Anything).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)
	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.Anything).Return(&elbv2.DescribeLoadBalancersOutput{}, nil)

	handler := NewHandler(createTestConfig(), asMock, elbMock, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{})

	assert.Nil(t, output)
	require.Error(t, err)
	stdErr := commonerrors.Normalize(err)
	assert.Equal(t, commonerrors.ErrCodeResourceNotFound, stdErr.Code)
	elbMock.AssertNotCalled(t, "ModifyTargetGroup", mock.Anything, mock.Anything)
}

func TestHandler_Execute_CredentialsError(t *testing.T) {
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	credErr := &smithy.GenericAPIError{Code: "UnrecognizedClientException", Message: "The security token included in the request is invalid."}
	asMock.On("SetDesiredCapacity", mock.Anything, mock.Anything).Return(nil, credErr)

	handler := NewHandler(createTestConfig(), asMock, elbMock, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{})

	assert.Nil(t, output)
	stdErr := commonerrors.Normalize(err)
	assert.Equal(t, commonerrors.ErrCodeAuthenticationFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_CloudAPIError(t *testing.T) {
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)

	asMock.On("SetDesiredCapacity", mock.Anything, mock.Anything).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)
	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.Anything).Return(nil, errors.New("throttled: Rate exceeded"))

	handler := NewHandler(createTestConfig(), asMock, elbMock, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{})

	assert.Nil(t, output)
	stdErr := commonerrors.Normalize(err)
	assert.Equal(t, commonerrors.ErrCodeCloudAPI, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Message, "DescribeLoadBalancers")
}

// ==========================
// Notification Tests
// ==========================

func TestHandler_Execute_Notification(t *testing.T) {
	asMock := new(mockAutoScaling)
	elbMock := new(mockELBV2)
	notifier := new(mockNotifier)

	asMock.On("SetDesiredCapacity", mock.Anything, mock.Anything).Return(&autoscaling.SetDesiredCapacityOutput{}, nil)
	elbMock.On("DescribeLoadBalancers", mock.Anything, mock.Anything).Return(describeOutputWith(testLBARN), nil)
	elbMock.On("ModifyTargetGroup", mock.Anything, mock.Anything).Return(&elbv2.ModifyTargetGroupOutput{}, nil)

	t.Run("publish success", func(t *testing.T) {
		notifier.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
			return sdkaws.ToString(in.TopicArn) == "arn:aws:sns:us-east-1:123456789012:scale-events"
		})).Return(&sns.PublishOutput{MessageId: sdkaws.String("msg-1")}, nil).Once()

		cfg := createTestConfig()
		cfg.NotifyTopicARN = "arn:aws:sns:us-east-1:123456789012:scale-events"
		handler := NewHandler(cfg, asMock, elbMock, notifier, logger.NewTestLogger(t))
		output, err := handler.Execute(context.Background(), &Input{})

		require.NoError(t, err)
		assert.True(t, output.Notified)
	})

	t.Run("publish failure does not fail the task", func(t *testing.T) {
		notifier.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("topic does not exist")).Once()

		cfg := createTestConfig()
		cfg.NotifyTopicARN = "arn:aws:sns:us-east-1:123456789012:scale-events"
		handler := NewHandler(cfg, asMock, elbMock, notifier, logger.NewTestLogger(t))
		output, err := handler.Execute(context.Background(), &Input{})

		require.NoError(t, err)
		assert.False(t, output.Notified)
	})

	notifier.AssertExpectations(t)
}
