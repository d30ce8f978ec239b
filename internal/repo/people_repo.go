package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/domain"
)

// CreatePerson inserts p, assigning an ID and timestamps when unset.
func CreatePerson(ctx context.Context, db *gorm.DB, p *domain.Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return db.WithContext(ctx).Create(p).Error
}

// ListPeople returns the saved people for userID, newest first.
func ListPeople(ctx context.Context, db *gorm.DB, userID string) ([]domain.Person, error) {
	var out []domain.Person
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	return out, err
}
