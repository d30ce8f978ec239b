package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/domain"
)

// CreateSoulmate inserts s, assigning an ID and CreatedAt when unset.
func CreateSoulmate(ctx context.Context, db *gorm.DB, s *domain.Soulmate) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(s).Error
}

// LatestSoulmate returns the newest soulmate for userID or ErrNotFound.
func LatestSoulmate(ctx context.Context, db *gorm.DB, userID string) (*domain.Soulmate, error) {
	var s domain.Soulmate
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSoulmate loads one soulmate owned by userID.
func GetSoulmate(ctx context.Context, db *gorm.DB, userID, id string) (*domain.Soulmate, error) {
	var s domain.Soulmate
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// HasSoulmateSince reports whether userID created a soulmate strictly after t.
func HasSoulmateSince(ctx context.Context, db *gorm.DB, userID string, t time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Soulmate{}).
		Where("user_id = ? AND created_at > ?", userID, t).
		Count(&n).Error
	return n > 0, err
}

// DeleteLatestSoulmate removes the newest soulmate for userID and returns
// it, or ErrNotFound when the user has none.
func DeleteLatestSoulmate(ctx context.Context, db *gorm.DB, userID string) (*domain.Soulmate, error) {
	var out *domain.Soulmate
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := LatestSoulmate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.Soulmate{}, "id = ?", s.ID).Error; err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListSoulmates returns all soulmates for userID, newest first.
func ListSoulmates(ctx context.Context, db *gorm.DB, userID string) ([]domain.Soulmate, error) {
	var out []domain.Soulmate
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}
