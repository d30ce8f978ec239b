package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/repo"
)

// DefaultIdempotencyTTL is how long a completed request can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyService remembers which resource a keyed POST produced.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// Exists reports whether an unexpired record exists. It matches the
// middleware lookup signature.
func (s *IdempotencyService) Exists(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
	_, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Resource returns the resource id stored for (userID, scope, key).
func (s *IdempotencyService) Resource(ctx context.Context, userID, scope, key string) (string, bool) {
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, scope, key, time.Now().UTC())
	if err != nil {
		return "", false
	}
	return rec.ResourceID, true
}

// Remember stores the outcome. A concurrent duplicate keeps the first
// record; other failures are logged and swallowed.
func (s *IdempotencyService) Remember(ctx context.Context, userID, scope, key, resourceID string, status int) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, userID, scope, key, resourceID, status, ttl)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		log.Ctx(ctx).Warn().Err(err).Str("scope", scope).Msg("idempotency record not stored")
	}
}

// Purge deletes expired records.
func (s *IdempotencyService) Purge(ctx context.Context, now time.Time) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, now)
}
