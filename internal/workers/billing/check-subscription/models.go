// internal/workers/billing/check-subscription/models.go
package checksubscription

import "platform-workers/internal/models"

type Input struct {
	UserID         string `json:"userId"`
	SubscriptionID string `json:"subscriptionId"`
}

// Output carries the raw subscription record (never mutated) plus the
// active/non-active classification.
type Output struct {
	Active       bool                 `json:"active"`
	Status       string               `json:"status"`
	Subscription *models.Subscription `json:"subscription"`
	User         *models.UserRecord   `json:"user"`
	FromCache    bool                 `json:"fromCache"`
}
