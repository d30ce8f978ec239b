package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/sidus-backend/internal/domain"
)

// SubscriptionUpdate carries the columns a billing event writes.
type SubscriptionUpdate struct {
	Status              string
	CustomerID          *string
	SubscriptionID      *string
	TrialEndDate        *time.Time
	SubscriptionEndDate *time.Time
}

// GetUserStats loads the row for userID or returns ErrNotFound.
func GetUserStats(ctx context.Context, db *gorm.DB, userID string) (*domain.UserStats, error) {
	var u domain.UserStats
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpsertProfile writes the birth profile and derived signs. A first insert
// starts with subscription status "none"; later calls keep billing columns.
func UpsertProfile(ctx context.Context, db *gorm.DB, userID string, basic domain.BasicInfo, astro domain.AstrologicalInfo) (*domain.UserStats, error) {
	now := time.Now().UTC()
	row := &domain.UserStats{
		UserID:             userID,
		BasicInfo:          datatypes.NewJSONType(basic),
		AstrologicalInfo:   datatypes.NewJSONType(astro),
		SubscriptionStatus: domain.SubscriptionNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"basic_info", "astrological_info", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}
	return GetUserStats(ctx, db, userID)
}

// UpsertSubscription writes every field of upd for userID, creating the row
// when the webhook arrives before onboarding finished.
func UpsertSubscription(ctx context.Context, db *gorm.DB, userID string, upd SubscriptionUpdate) error {
	now := time.Now().UTC()
	row := &domain.UserStats{
		UserID:               userID,
		SubscriptionStatus:   upd.Status,
		StripeCustomerID:     upd.CustomerID,
		StripeSubscriptionID: upd.SubscriptionID,
		TrialEndDate:         upd.TrialEndDate,
		SubscriptionEndDate:  upd.SubscriptionEndDate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subscription_status", "stripe_customer_id", "stripe_subscription_id",
			"trial_end_date", "subscription_end_date", "updated_at",
		}),
	}).Create(row).Error
}

// UpdateSubscriptionFields applies a partial update to an existing row.
// Only non-nil pointers and a non-empty Status are written. A missing row is
// not an error; the number of affected rows is returned.
func UpdateSubscriptionFields(ctx context.Context, db *gorm.DB, userID string, upd SubscriptionUpdate) (int64, error) {
	cols := map[string]any{"updated_at": time.Now().UTC()}
	if upd.Status != "" {
		cols["subscription_status"] = upd.Status
	}
	if upd.CustomerID != nil {
		cols["stripe_customer_id"] = *upd.CustomerID
	}
	if upd.SubscriptionID != nil {
		cols["stripe_subscription_id"] = *upd.SubscriptionID
	}
	if upd.TrialEndDate != nil {
		cols["trial_end_date"] = *upd.TrialEndDate
	}
	if upd.SubscriptionEndDate != nil {
		cols["subscription_end_date"] = *upd.SubscriptionEndDate
	}
	res := db.WithContext(ctx).Model(&domain.UserStats{}).Where("user_id = ?", userID).Updates(cols)
	return res.RowsAffected, res.Error
}

// ClearSubscription resets the user to status "none" and nulls the
// subscription id and both dates. The customer id is kept.
func ClearSubscription(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.UserStats{}).Where("user_id = ?", userID).Updates(map[string]any{
		"subscription_status":    domain.SubscriptionNone,
		"stripe_subscription_id": nil,
		"trial_end_date":         nil,
		"subscription_end_date":  nil,
		"updated_at":             time.Now().UTC(),
	})
	return res.RowsAffected, res.Error
}

// FindBySubscriptionID resolves the owner of a Stripe subscription.
func FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*domain.UserStats, error) {
	var u domain.UserStats
	err := db.WithContext(ctx).Where("stripe_subscription_id = ?", subscriptionID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
