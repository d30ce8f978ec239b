package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/domain"
)

// CreateChatMessages inserts the given turns in one statement. IDs and
// CreatedAt are assigned when unset; later entries get a strictly later
// timestamp so history ordering is stable.
func CreateChatMessages(ctx context.Context, db *gorm.DB, msgs []*domain.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	base := time.Now().UTC()
	for i, m := range msgs {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		}
	}
	return db.WithContext(ctx).Create(&msgs).Error
}

// CountChatMessages returns how many turns a user has in one chat type.
func CountChatMessages(ctx context.Context, db *gorm.DB, userID, chatType string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM chat_messages WHERE user_id = ? AND chat_type = ?", userID, chatType).
		Scan(&total).Error
	return total, err
}

// ListChatMessagesPage returns a window of turns in chronological order.
// limit <= 0 returns everything from offset on.
func ListChatMessagesPage(ctx context.Context, db *gorm.DB, userID, chatType string, offset, limit int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	q := db.WithContext(ctx).
		Where("user_id = ? AND chat_type = ?", userID, chatType).
		Order("created_at ASC").Order("id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
