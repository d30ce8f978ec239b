package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/repo"
)

// RelationshipSoulmate tags generated soulmates inside the people list.
const RelationshipSoulmate = "soulmate"

// PersonInput is a contact the user wants to save.
type PersonInput struct {
	Name             string
	BirthDate        string
	BirthTime        string
	BirthLocation    string
	RelationshipType string
}

// PersonEntry is one row of the merged people list.
type PersonEntry struct {
	ID                string                    `json:"id"`
	UserID            string                    `json:"user_id"`
	PersonalInfo      domain.PersonInfo         `json:"personal_info"`
	AstrologicalInfo  domain.AstrologicalInfo   `json:"astrological_info"`
	CompatibilityInfo *domain.CompatibilityInfo `json:"compatibility_info,omitempty"`
	ImageURL          string                    `json:"image_url,omitempty"`
	IsSoulmate        bool                      `json:"is_soulmate,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// PeopleService manages saved contacts.
type PeopleService struct {
	DB  *gorm.DB
	Now func() time.Time
}

// Add stores a new person. The Big Three is computed when a birth date is
// given.
func (s *PeopleService) Add(ctx context.Context, userID string, in PersonInput) (*domain.Person, error) {
	ctx, span := otel.Tracer("services/PeopleService").Start(ctx, "Add",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("personal_info.name is required")
	}
	if len([]rune(name)) > maxNameRunes {
		return nil, invalid("name is too long")
	}

	info := domain.PersonInfo{
		Name:             name,
		BirthDate:        strings.TrimSpace(in.BirthDate),
		BirthTime:        strings.TrimSpace(in.BirthTime),
		BirthLocation:    strings.TrimSpace(in.BirthLocation),
		RelationshipType: strings.TrimSpace(in.RelationshipType),
	}
	var signs domain.AstrologicalInfo
	if info.BirthDate != "" {
		big, err := ChartFor(info.BirthDate, info.BirthTime, info.BirthLocation, s.now())
		if err != nil {
			return nil, err
		}
		signs = toAstroInfo(big)
	}

	p := &domain.Person{
		UserID:           userID,
		PersonalInfo:     datatypes.NewJSONType(info),
		AstrologicalInfo: datatypes.NewJSONType(signs),
	}
	if err := repo.CreatePerson(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List merges people and soulmates, newest first.
func (s *PeopleService) List(ctx context.Context, userID string) ([]PersonEntry, error) {
	ctx, span := otel.Tracer("services/PeopleService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	people, err := repo.ListPeople(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	soulmates, err := repo.ListSoulmates(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	out := make([]PersonEntry, 0, len(people)+len(soulmates))
	for _, p := range people {
		out = append(out, PersonEntry{
			ID:               p.ID,
			UserID:           p.UserID,
			PersonalInfo:     p.PersonalInfo.Data(),
			AstrologicalInfo: p.AstrologicalInfo.Data(),
			CreatedAt:        p.CreatedAt,
		})
	}
	for _, sm := range soulmates {
		pi := sm.PersonalInfo.Data()
		ai := sm.AstrologicalInfo.Data()
		ci := sm.CompatibilityInfo.Data()
		out = append(out, PersonEntry{
			ID:     sm.ID,
			UserID: sm.UserID,
			PersonalInfo: domain.PersonInfo{
				Name:             pi.Name,
				RelationshipType: RelationshipSoulmate,
			},
			AstrologicalInfo: domain.AstrologicalInfo{
				SunSign:    ai.SunSign,
				MoonSign:   ai.MoonSign,
				RisingSign: ai.RisingSign,
			},
			CompatibilityInfo: &ci,
			ImageURL:          sm.ImageURL,
			IsSoulmate:        true,
			CreatedAt:         sm.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	span.SetAttributes(attribute.Int("people.count", len(out)))
	return out, nil
}

// ETag returns a weak validator over both tables backing List.
func (s *PeopleService) ETag(ctx context.Context, userID string) (string, error) {
	pc, pl, err := repo.PeopleStats(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}
	sc, sl, err := repo.SoulmateStats(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`W/"people-%d-%d-%d-%d"`, pc, unixNano(pl), sc, unixNano(sl)), nil
}

func unixNano(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixNano()
}

func (s *PeopleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
