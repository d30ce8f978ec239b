package repo

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/tbourn/sidus-backend/internal/domain"
)

func TestCreatePerson_AndListNewestFirst(t *testing.T) {
	db := newTestDB(t, &domain.Person{})
	ctx := context.Background()

	p := &domain.Person{
		UserID:           "u1",
		PersonalInfo:     datatypes.NewJSONType(domain.PersonInfo{Name: "Sam", RelationshipType: "friend"}),
		AstrologicalInfo: datatypes.NewJSONType(domain.AstrologicalInfo{SunSign: "Leo"}),
	}
	if err := CreatePerson(ctx, db, p); err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() || !p.UpdatedAt.Equal(p.CreatedAt) {
		t.Fatalf("defaults not applied: %+v", p)
	}

	older := &domain.Person{ID: "older", UserID: "u1", CreatedAt: p.CreatedAt.Add(-time.Hour)}
	if err := CreatePerson(ctx, db, older); err != nil {
		t.Fatalf("seed older: %v", err)
	}
	if err := CreatePerson(ctx, db, &domain.Person{ID: "other", UserID: "u2"}); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	list, err := ListPeople(ctx, db, "u1")
	if err != nil {
		t.Fatalf("ListPeople: %v", err)
	}
	if len(list) != 2 || list[0].ID != p.ID || list[1].ID != "older" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].PersonalInfo.Data().Name != "Sam" {
		t.Fatalf("personal info lost: %+v", list[0].PersonalInfo.Data())
	}
}
