// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/domain"
)

// PeopleStats returns the number of saved people for userID and the greatest
// UpdatedAt among them. When the user has no rows, count is 0 and latest is nil.
func PeopleStats(ctx context.Context, db *gorm.DB, userID string) (count int64, latest *time.Time, err error) {
	return latestStat(ctx, db, &domain.Person{}, userID, "updated_at")
}

// SoulmateStats returns the number of soulmates for userID and the most
// recent CreatedAt. Soulmate rows are immutable so created_at is enough.
func SoulmateStats(ctx context.Context, db *gorm.DB, userID string) (count int64, latest *time.Time, err error) {
	return latestStat(ctx, db, &domain.Soulmate{}, userID, "created_at")
}

func latestStat(ctx context.Context, db *gorm.DB, model any, userID, column string) (int64, *time.Time, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Order + Limit instead of MAX(), which comes back as TEXT in SQLite.
	var stamps []time.Time
	err := db.WithContext(ctx).Model(model).
		Where("user_id = ?", userID).
		Order(column+" DESC").
		Limit(1).
		Pluck(column, &stamps).Error
	if err != nil {
		return 0, nil, err
	}
	if len(stamps) == 0 {
		return count, nil, nil
	}
	return count, &stamps[0], nil
}
