package models

// UserRecord is the fixed-shape record returned by the user store.
type UserRecord struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	SubscriptionID string `json:"subscriptionId"`
}
