package domain

import (
	"testing"
	"time"
)

func TestIdempotency_UniquePerUserScopeKey(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if !db.Migrator().HasIndex(&Idempotency{}, "ux_user_scope_key") {
		t.Fatalf("expected composite index ux_user_scope_key to exist")
	}

	now := time.Now().UTC()
	rec := func(id, user, scope, key string) *Idempotency {
		return &Idempotency{
			ID: id, UserID: user, Scope: scope, Key: key,
			ResourceID: "r-" + id, Status: 200, ExpiresAt: now.Add(time.Hour),
		}
	}

	if err := db.Create(rec("1", "u1", "soulmate", "k1")).Error; err != nil {
		t.Fatalf("insert first: %v", err)
	}
	if err := db.Create(rec("2", "u1", "soulmate", "k1")).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate (user, scope, key)")
	}
	// Same key under another user or scope is allowed.
	if err := db.Create(rec("3", "u2", "soulmate", "k1")).Error; err != nil {
		t.Fatalf("other user: %v", err)
	}
	if err := db.Create(rec("4", "u1", "people", "k1")).Error; err != nil {
		t.Fatalf("other scope: %v", err)
	}

	var got Idempotency
	if err := db.First(&got, "id = ?", "1").Error; err != nil {
		t.Fatalf("first: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected autoCreateTime to populate CreatedAt")
	}
}
