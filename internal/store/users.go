// internal/store/users.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	commonerrors "platform-workers/internal/common/errors"
	"platform-workers/internal/models"
)

// UserStore is the user-lookup collaborator consumed by the billing
// checker. The upstream system stubbed this out; the interface lets a
// real data store be supplied without touching the checker.
type UserStore interface {
	LookupUser(ctx context.Context, userID string) (*models.UserRecord, error)
}

// StaticUserStore serves a fixed record on every call, recreated
// identically each time. This is the default store.
type StaticUserStore struct {
	Name           string
	Role           string
	SubscriptionID string
}

func NewStaticUserStore() *StaticUserStore {
	return &StaticUserStore{
		Name:           "Test User",
		Role:           "admin",
		SubscriptionID: "sub_12345",
	}
}

func (s *StaticUserStore) LookupUser(_ context.Context, userID string) (*models.UserRecord, error) {
	return &models.UserRecord{
		UserID:         userID,
		Name:           s.Name,
		Role:           s.Role,
		SubscriptionID: s.SubscriptionID,
	}, nil
}

// PostgresUserStore reads user records from the users table.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) LookupUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	var record models.UserRecord
	query := `SELECT user_id, name, role, subscription_id FROM users WHERE user_id = $1`
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID, &record.Name, &record.Role, &record.SubscriptionID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commonerrors.NewResourceNotFoundError("user", fmt.Sprintf("userId: %s", userID))
		}
		return nil, commonerrors.NewUserLookupFailedError(err)
	}

	return &record, nil
}
