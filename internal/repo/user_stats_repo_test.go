package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/sidus-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUpsertProfile_InsertThenUpdateKeepsBilling(t *testing.T) {
	db := newTestDB(t, &domain.UserStats{})
	ctx := context.Background()

	basic := domain.BasicInfo{FirstName: "Ana", BirthDate: "1990-07-15"}
	astro := domain.AstrologicalInfo{SunSign: "Cancer", MoonSign: "Libra", RisingSign: "Cancer"}
	u, err := UpsertProfile(ctx, db, "u1", basic, astro)
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if u.SubscriptionStatus != domain.SubscriptionNone {
		t.Fatalf("new profile should start at none, got %q", u.SubscriptionStatus)
	}
	if u.BasicInfo.Data().FirstName != "Ana" || u.AstrologicalInfo.Data().MoonSign != "Libra" {
		t.Fatalf("unexpected row: %+v", u)
	}

	if _, err := UpdateSubscriptionFields(ctx, db, "u1", SubscriptionUpdate{Status: domain.SubscriptionActive}); err != nil {
		t.Fatalf("UpdateSubscriptionFields: %v", err)
	}

	basic.FirstName = "Ana Maria"
	u, err = UpsertProfile(ctx, db, "u1", basic, astro)
	if err != nil {
		t.Fatalf("second UpsertProfile: %v", err)
	}
	if u.BasicInfo.Data().FirstName != "Ana Maria" {
		t.Fatalf("basic info not updated: %+v", u.BasicInfo.Data())
	}
	if u.SubscriptionStatus != domain.SubscriptionActive {
		t.Fatalf("profile upsert must not reset billing, got %q", u.SubscriptionStatus)
	}
}

func TestGetUserStats_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.UserStats{})
	if _, err := GetUserStats(context.Background(), db, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertSubscription_CreatesAndOverwrites(t *testing.T) {
	db := newTestDB(t, &domain.UserStats{})
	ctx := context.Background()
	trial := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)

	err := UpsertSubscription(ctx, db, "u2", SubscriptionUpdate{
		Status:         domain.SubscriptionActive,
		CustomerID:     strPtr("cus_1"),
		SubscriptionID: strPtr("sub_1"),
		TrialEndDate:   &trial,
	})
	if err != nil {
		t.Fatalf("UpsertSubscription: %v", err)
	}
	u, err := GetUserStats(ctx, db, "u2")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if u.StripeSubscriptionID == nil || *u.StripeSubscriptionID != "sub_1" || u.TrialEndDate == nil || !u.TrialEndDate.Equal(trial) {
		t.Fatalf("unexpected row: %+v", u)
	}

	if err := UpsertSubscription(ctx, db, "u2", SubscriptionUpdate{Status: domain.SubscriptionPastDue, SubscriptionID: strPtr("sub_1")}); err != nil {
		t.Fatalf("second UpsertSubscription: %v", err)
	}
	u, _ = GetUserStats(ctx, db, "u2")
	if u.SubscriptionStatus != domain.SubscriptionPastDue || u.TrialEndDate != nil || u.StripeCustomerID != nil {
		t.Fatalf("upsert should overwrite every column: %+v", u)
	}
}

func TestClearSubscription_KeepsCustomer(t *testing.T) {
	db := newTestDB(t, &domain.UserStats{})
	ctx := context.Background()
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_ = UpsertSubscription(ctx, db, "u3", SubscriptionUpdate{
		Status:              domain.SubscriptionActive,
		CustomerID:          strPtr("cus_3"),
		SubscriptionID:      strPtr("sub_3"),
		SubscriptionEndDate: &end,
	})

	n, err := ClearSubscription(ctx, db, "u3")
	if err != nil || n != 1 {
		t.Fatalf("ClearSubscription: n=%d err=%v", n, err)
	}
	u, _ := GetUserStats(ctx, db, "u3")
	if u.SubscriptionStatus != domain.SubscriptionNone || u.StripeSubscriptionID != nil || u.SubscriptionEndDate != nil {
		t.Fatalf("subscription not cleared: %+v", u)
	}
	if u.StripeCustomerID == nil || *u.StripeCustomerID != "cus_3" {
		t.Fatalf("customer id should survive: %+v", u)
	}

	if n, _ := ClearSubscription(ctx, db, "nobody"); n != 0 {
		t.Fatalf("expected 0 rows for unknown user, got %d", n)
	}
}

func TestFindBySubscriptionID(t *testing.T) {
	db := newTestDB(t, &domain.UserStats{})
	ctx := context.Background()
	_ = UpsertSubscription(ctx, db, "u4", SubscriptionUpdate{Status: domain.SubscriptionActive, SubscriptionID: strPtr("sub_4")})

	u, err := FindBySubscriptionID(ctx, db, "sub_4")
	if err != nil || u.UserID != "u4" {
		t.Fatalf("FindBySubscriptionID: u=%+v err=%v", u, err)
	}
	if _, err := FindBySubscriptionID(ctx, db, "sub_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
