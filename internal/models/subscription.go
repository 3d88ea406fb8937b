package models

// Subscription is the payment-processor record consulted by the billing
// checker. The status set is open-ended ("active", "trialing", "canceled",
// ...); only "active" is special-cased and the record is never mutated.
type Subscription struct {
	ID               string `json:"id"`
	CustomerID       string `json:"customerId"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"currentPeriodEnd"`
	CancelAtPeriodEnd bool  `json:"cancelAtPeriodEnd"`
}

// StatusActive is the only status value the checker branches on.
const StatusActive = "active"

// IsActive reports whether the subscription is in the active state.
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}
