package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/astro"
	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/repo"
)

// FallbackPersonalityInsight is used when the LLM insight is unavailable.
const FallbackPersonalityInsight = "The cosmos sees your beautiful soul and the light you bring to the world."

const maxNameRunes = 80

// PersonalityInsighter writes a short personalised reading for a sign.
type PersonalityInsighter interface {
	PersonalityInsight(ctx context.Context, sign, name string) (string, error)
}

// BirthInput is the onboarding questionnaire.
type BirthInput struct {
	Name          string
	BirthDate     string
	BirthTime     string
	BirthLocation string
}

// Profile is a stored birth profile with its readings.
type Profile struct {
	Stats              *domain.UserStats `json:"profile"`
	Insight            string            `json:"insight"`
	PersonalityInsight string            `json:"personalityInsight,omitempty"`
}

// ProfileService stores onboarding answers and the derived Big Three.
type ProfileService struct {
	DB *gorm.DB
	// Insights is optional; nil skips the LLM reading.
	Insights PersonalityInsighter
	Now      func() time.Time
}

// SaveBirthChart validates in, derives the Big Three and upserts the
// user's profile.
func (s *ProfileService) SaveBirthChart(ctx context.Context, userID string, in BirthInput) (*Profile, error) {
	ctx, span := otel.Tracer("services/ProfileService").Start(ctx, "SaveBirthChart",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if len([]rune(name)) > maxNameRunes {
		return nil, invalid("name is too long")
	}
	big, err := ChartFor(in.BirthDate, in.BirthTime, in.BirthLocation, s.now())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("astro.sun", big.Sun.String()))

	basic := domain.BasicInfo{
		FirstName:     name,
		BirthDate:     strings.TrimSpace(in.BirthDate),
		BirthTime:     strings.TrimSpace(in.BirthTime),
		BirthLocation: strings.TrimSpace(in.BirthLocation),
	}
	stats, err := repo.UpsertProfile(ctx, s.DB, userID, basic, toAstroInfo(big))
	if err != nil {
		return nil, err
	}

	out := &Profile{Stats: stats, Insight: astro.Insight(big.Sun)}
	if s.Insights != nil {
		out.PersonalityInsight = s.personalityInsight(ctx, big.Sun, name)
	}
	return out, nil
}

// Get returns the stored profile for userID.
func (s *ProfileService) Get(ctx context.Context, userID string) (*Profile, error) {
	stats, err := repo.GetUserStats(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	sun := astro.Sign(stats.AstrologicalInfo.Data().SunSign)
	return &Profile{Stats: stats, Insight: astro.Insight(sun)}, nil
}

func (s *ProfileService) personalityInsight(ctx context.Context, sun astro.Sign, name string) string {
	start := time.Now()
	text, err := s.Insights.PersonalityInsight(ctx, sun.String(), name)
	observeExternal("openai", "insight", start)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("sign", sun.String()).Msg("personality insight unavailable")
		}
		return FallbackPersonalityInsight
	}
	return strings.TrimSpace(text)
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ChartFor validates raw birth fields and computes a filled Big Three.
// Time and location are optional.
func ChartFor(birthDate, birthTime, location string, now time.Time) (astro.BigThree, error) {
	date, err := astro.ParseBirthDate(strings.TrimSpace(birthDate), now)
	if err != nil {
		return astro.BigThree{}, invalid("%v", err)
	}
	if err := astro.ValidateBirthTime(strings.TrimSpace(birthTime)); err != nil {
		return astro.BigThree{}, invalid("%v", err)
	}
	if err := astro.ValidateLocation(location); err != nil {
		return astro.BigThree{}, invalid("%v", err)
	}
	return astro.ComputeBigThree(date, strings.TrimSpace(birthTime), strings.TrimSpace(location)).Filled(), nil
}

func toAstroInfo(b astro.BigThree) domain.AstrologicalInfo {
	return domain.AstrologicalInfo{
		SunSign:    b.Sun.String(),
		MoonSign:   b.Moon.String(),
		RisingSign: b.Rising.String(),
	}
}
