// internal/workers/billing/check-subscription/handler.go
package checksubscription

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"platform-workers/internal/common/billing"
	"platform-workers/internal/common/logger"
	"platform-workers/internal/models"
	"platform-workers/internal/store"
)

const (
	TaskType = "check-subscription"
)

type Handler struct {
	config  *Config
	gateway billing.Gateway
	users   store.UserStore
	redis   *redis.Client
	logger  logger.Logger
}

func NewHandler(config *Config, gateway billing.Gateway, users store.UserStore, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		gateway: gateway,
		users:   users,
		redis:   redisClient,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute retrieves the subscription and the user record, classifies the
// status, and returns the subscription unchanged. Identifiers are passed
// through to the payment processor without validation.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	user, err := h.users.LookupUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	sub, fromCache, err := h.getSubscription(ctx, input.SubscriptionID)
	if err != nil {
		return nil, err
	}

	active := sub.IsActive()
	if active {
		h.logger.Info("subscription is active", map[string]interface{}{
			"userId":         input.UserID,
			"subscriptionId": sub.ID,
		})
	} else {
		h.logger.Info("subscription is not active", map[string]interface{}{
			"userId":         input.UserID,
			"subscriptionId": sub.ID,
			"status":         sub.Status,
		})
	}

	return &Output{
		Active:       active,
		Status:       sub.Status,
		Subscription: sub,
		User:         user,
		FromCache:    fromCache,
	}, nil
}

func (h *Handler) getSubscription(ctx context.Context, subscriptionID string) (*models.Subscription, bool, error) {
	cacheKey := "sub:" + subscriptionID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var sub models.Subscription
		if err := json.Unmarshal([]byte(val), &sub); err == nil {
			return &sub, true, nil
		}
	}

	sub, err := h.gateway.RetrieveSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(sub); err == nil {
		h.redis.Set(ctx, cacheKey, data, h.cacheTTL())
	}

	return sub, false, nil
}

func (h *Handler) cacheTTL() time.Duration {
	if h.config.CacheTTL > 0 {
		return h.config.CacheTTL
	}
	return 5 * time.Minute
}
