// internal/common/billing/gateway.go
package billing

import (
	"context"

	"platform-workers/internal/models"
)

// Gateway abstracts the payment-processor operations the billing checker
// needs. Keeping it narrow lets handlers be tested without the SDK.
type Gateway interface {
	RetrieveSubscription(ctx context.Context, subscriptionID string) (*models.Subscription, error)
}
