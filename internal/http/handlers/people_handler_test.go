package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"gorm.io/datatypes"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/services"
)

func TestAddPerson(t *testing.T) {
	var got services.PersonInput
	people := &fakePeople{add: func(_ context.Context, u string, in services.PersonInput) (*domain.Person, error) {
		got = in
		return &domain.Person{ID: "p1", UserID: u, PersonalInfo: datatypes.NewJSONType(domain.PersonInfo{Name: in.Name})}, nil
	}}
	r := newTestRouter(New(Services{People: people}), nil)

	body := `{"personal_info":{"name":"Bo","birth_date":"1992-03-03","relationship_type":"friend"}}`
	w := doJSON(t, r, http.MethodPost, "/people", body, asUser("u1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got.Name != "Bo" || got.BirthDate != "1992-03-03" || got.RelationshipType != "friend" {
		t.Fatalf("unexpected input %+v", got)
	}
	if res := decode[PersonResponse](t, w); res.Data.ID != "p1" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestListPeople_ETag(t *testing.T) {
	people := &fakePeople{
		etag: `W/"people-2"`,
		list: func(context.Context, string) ([]services.PersonEntry, error) {
			return []services.PersonEntry{{ID: "s1", IsSoulmate: true}, {ID: "p1"}}, nil
		},
	}
	r := newTestRouter(New(Services{People: people}), nil)

	w := doJSON(t, r, http.MethodGet, "/people", nil, asUser("u1"))
	if w.Code != http.StatusOK || w.Header().Get("ETag") != `W/"people-2"` {
		t.Fatalf("status=%d etag=%q", w.Code, w.Header().Get("ETag"))
	}
	res := decode[PeopleResponse](t, w)
	if len(res.Data) != 2 || !res.Data[0].IsSoulmate {
		t.Fatalf("unexpected list %+v", res.Data)
	}

	hdr := asUser("u1")
	hdr["If-None-Match"] = `W/"people-2"`
	w = doJSON(t, r, http.MethodGet, "/people", nil, hdr)
	if w.Code != http.StatusNotModified || w.Body.Len() != 0 {
		t.Fatalf("expected 304, got %d %q", w.Code, w.Body.String())
	}
	if people.lists != 1 {
		t.Fatalf("304 should skip the list query, lists=%d", people.lists)
	}
}

func TestListPeople_EmptyIsArray(t *testing.T) {
	people := &fakePeople{list: func(context.Context, string) ([]services.PersonEntry, error) { return nil, nil }}
	r := newTestRouter(New(Services{People: people}), nil)

	w := doJSON(t, r, http.MethodGet, "/people", nil, asUser("u1"))
	var body map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if string(body["data"]) != "[]" {
		t.Fatalf("want [], got %s", body["data"])
	}
}
