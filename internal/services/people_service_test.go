package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/repo"
)

func TestPeopleService_Add(t *testing.T) {
	s := &PeopleService{DB: newSvcDB(t), Now: func() time.Time { return testNow }}
	ctx := context.Background()

	p, err := s.Add(ctx, "u1", PersonInput{Name: "Sam", RelationshipType: "friend"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.AstrologicalInfo.Data().SunSign != "" {
		t.Fatalf("no birth date should leave signs empty: %+v", p.AstrologicalInfo.Data())
	}

	p, err = s.Add(ctx, "u1", PersonInput{Name: "Lee", BirthDate: "1990-07-15"})
	if err != nil {
		t.Fatalf("add with date: %v", err)
	}
	if p.AstrologicalInfo.Data().SunSign != "Cancer" {
		t.Fatalf("expected computed sun sign, got %+v", p.AstrologicalInfo.Data())
	}

	if _, err := s.Add(ctx, "u1", PersonInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.Add(ctx, "u1", PersonInput{Name: "Bad", BirthDate: "tomorrow"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for date, got %v", err)
	}
}

func TestPeopleService_ListMergesSoulmates(t *testing.T) {
	s := &PeopleService{DB: newSvcDB(t)}
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", PersonInput{Name: "Sam"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	sm := &domain.Soulmate{
		UserID:           "u1",
		PersonalInfo:     datatypes.NewJSONType(domain.SoulmatePersonalInfo{Name: "Your Soulmate", Gender: "female"}),
		AstrologicalInfo: datatypes.NewJSONType(domain.SoulmateAstroInfo{SunSign: "Leo", MoonSign: "Aries", RisingSign: "Virgo", SoulmateSign: "Leo"}),
		CompatibilityInfo: datatypes.NewJSONType(domain.CompatibilityInfo{
			CompatibilityScore: 97,
		}),
		ImageURL:  "https://example.com/p.png",
		CreatedAt: time.Now().UTC().Add(time.Hour),
	}
	if err := repo.CreateSoulmate(ctx, s.DB, sm); err != nil {
		t.Fatalf("seed soulmate: %v", err)
	}

	list, err := s.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	first := list[0]
	if !first.IsSoulmate || first.PersonalInfo.RelationshipType != RelationshipSoulmate {
		t.Fatalf("newest entry should be the soulmate: %+v", first)
	}
	if first.CompatibilityInfo == nil || first.CompatibilityInfo.CompatibilityScore != 97 || first.ImageURL == "" {
		t.Fatalf("soulmate fields missing: %+v", first)
	}
	if list[1].IsSoulmate || list[1].PersonalInfo.Name != "Sam" {
		t.Fatalf("second entry: %+v", list[1])
	}

	if other, err := s.List(ctx, "u2"); err != nil || len(other) != 0 {
		t.Fatalf("other user: %v %v", other, err)
	}
}

func TestPeopleService_ETagChanges(t *testing.T) {
	s := &PeopleService{DB: newSvcDB(t)}
	ctx := context.Background()

	e1, err := s.ETag(ctx, "u1")
	if err != nil {
		t.Fatalf("etag: %v", err)
	}
	if e1 != `W/"people-0-0-0-0"` {
		t.Fatalf("empty etag: %s", e1)
	}
	if _, err := s.Add(ctx, "u1", PersonInput{Name: "Sam"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	e2, _ := s.ETag(ctx, "u1")
	if e2 == e1 {
		t.Fatalf("etag should change after insert")
	}
	if e3, _ := s.ETag(ctx, "u1"); e3 != e2 {
		t.Fatalf("etag not stable: %s vs %s", e2, e3)
	}
}
