// internal/common/billing/stripe.go
package billing

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	commonerrors "platform-workers/internal/common/errors"
	"platform-workers/internal/models"
)

// StripeGateway implements Gateway over the Stripe SDK. Authentication is
// a single static API key from process configuration.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(apiKey string) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) RetrieveSubscription(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, commonerrors.NewBillingAPIError(stripeErr, stripeErr.HTTPStatusCode >= 500)
		}
		return nil, commonerrors.NewBillingAPIError(err, true)
	}

	record := &models.Subscription{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		record.CustomerID = sub.Customer.ID
	}

	return record, nil
}
