// Package services – SoulmateService
//
// SoulmateService generates a partner for a user: three random signs, a
// portrait re-hosted on our bucket, a high compatibility score and an LLM
// narrative. The steps run strictly in order and nothing is persisted
// unless all of them succeed.

package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/astro"
	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/repo"
	"github.com/tbourn/sidus-backend/internal/storage"
)

// DefaultCooldown is the minimum gap between two generations for one user.
const DefaultCooldown = 30 * time.Second

const (
	soulmateName     = "Your Soulmate"
	minSoulmateScore = 90
	maxSoulmateScore = 100
	maxGenderRunes   = 32
	maxEthnicityTags = 8
)

// ImageGenerator renders a prompt and returns a temporary image URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// CompatibilityAnalyst writes the narrative attached to a soulmate.
type CompatibilityAnalyst interface {
	CompatibilityAnalysis(ctx context.Context, userSign, soulmateSign, gender string, ethnicities []string) (string, error)
}

// ImageUploader re-hosts a remote image and returns its public URL.
type ImageUploader interface {
	UploadFromURL(ctx context.Context, sourceURL, fileName string) (string, error)
}

// GenerateInput is a soulmate generation request. A nil Ethnicities means
// the preference was not given and is rejected; an empty non-nil slice means
// no preference and renders as "diverse".
type GenerateInput struct {
	UserSign    string
	Gender      string
	Ethnicities []string
}

// SoulmateResult is what a completed generation returns.
type SoulmateResult struct {
	ID                 string     `json:"id"`
	ImageURL           string     `json:"imageUrl"`
	SoulmateSign       astro.Sign `json:"soulmateSign"`
	CompatibilityScore int        `json:"compatibilityScore"`
	Analysis           string     `json:"analysis"`
	SunSign            astro.Sign `json:"sunSign"`
	MoonSign           astro.Sign `json:"moonSign"`
	RisingSign         astro.Sign `json:"risingSign"`
	ShortDescription   string     `json:"shortDescription"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// SoulmateService orchestrates soulmate generation and storage.
type SoulmateService struct {
	DB       *gorm.DB
	Images   ImageGenerator
	Analyst  CompatibilityAnalyst
	Uploader ImageUploader

	// Rand returns a uniform value in [0,1). Defaults to math/rand/v2.
	Rand func() float64
	// Now defaults to time.Now.
	Now func() time.Time
	// Cooldown <= 0 uses DefaultCooldown.
	Cooldown time.Duration
}

// Generate runs the full pipeline for userID.
func (s *SoulmateService) Generate(ctx context.Context, userID string, in GenerateInput) (res *SoulmateResult, err error) {
	ctx, span := otel.Tracer("services/SoulmateService").Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("soulmate.gender", in.Gender),
		),
	)
	defer span.End()
	defer func() { s.record(span, err) }()

	userSign, gender, ethnicities, err := normalizeGenerateInput(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	recent, err := repo.HasSoulmateSince(ctx, s.DB, userID, now.Add(-s.cooldown()))
	if err != nil {
		return nil, err
	}
	if recent {
		return nil, ErrCooldown
	}

	sun, moon, rising := s.drawSign(), s.drawSign(), s.drawSign()
	soulmateSign := sun
	span.SetAttributes(
		attribute.String("soulmate.sun", sun.String()),
		attribute.String("soulmate.moon", moon.String()),
		attribute.String("soulmate.rising", rising.String()),
	)

	prompt := PortraitPrompt(userSign, gender, ethnicities)

	start := time.Now()
	tmpURL, err := s.Images.GenerateImage(ctx, prompt)
	observeExternal("openai", "image", start)
	if err != nil {
		return nil, classify(ErrImageGeneration, err)
	}
	if strings.TrimSpace(tmpURL) == "" {
		return nil, fmt.Errorf("%w: empty image url", ErrImageGeneration)
	}

	start = time.Now()
	imageURL, err := s.Uploader.UploadFromURL(ctx, tmpURL, storage.SoulmateFileName(now))
	observeExternal("storage", "upload", start)
	if err != nil {
		return nil, classify(ErrImageUpload, err)
	}

	// The table score is a reference point only; generated soulmates always
	// land in the high band.
	span.SetAttributes(attribute.Int("soulmate.baseline_score", astro.Compatibility(userSign, soulmateSign)))
	score := s.drawScore()

	start = time.Now()
	analysis, err := s.Analyst.CompatibilityAnalysis(ctx, userSign.String(), soulmateSign.String(), gender, ethnicities)
	observeExternal("openai", "analysis", start)
	if err != nil {
		return nil, classify(ErrAnalysis, err)
	}
	if strings.TrimSpace(analysis) == "" {
		return nil, fmt.Errorf("%w: empty analysis", ErrAnalysis)
	}

	row := &domain.Soulmate{
		UserID: userID,
		PersonalInfo: datatypes.NewJSONType(domain.SoulmatePersonalInfo{
			Name:      soulmateName,
			Gender:    gender,
			Ethnicity: ethnicities,
		}),
		AstrologicalInfo: datatypes.NewJSONType(domain.SoulmateAstroInfo{
			SunSign:      sun.String(),
			MoonSign:     moon.String(),
			RisingSign:   rising.String(),
			SoulmateSign: soulmateSign.String(),
		}),
		CompatibilityInfo: datatypes.NewJSONType(domain.CompatibilityInfo{
			CompatibilityScore: score,
			Analysis:           analysis,
			ShortDescription:   ShortDescription(soulmateSign, rising),
		}),
		ImageURL:  imageURL,
		CreatedAt: now,
	}
	if err := repo.CreateSoulmate(ctx, s.DB, row); err != nil {
		return nil, err
	}
	return ResultFromRecord(row), nil
}

// Latest returns the newest soulmate for userID, or nil when there is none.
func (s *SoulmateService) Latest(ctx context.Context, userID string) (*domain.Soulmate, error) {
	ctx, span := otel.Tracer("services/SoulmateService").Start(ctx, "Latest",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	sm, err := repo.LatestSoulmate(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return sm, err
}

// List returns every soulmate of userID, newest first.
func (s *SoulmateService) List(ctx context.Context, userID string) ([]domain.Soulmate, error) {
	return repo.ListSoulmates(ctx, s.DB, userID)
}

// SaveInput is a client-assembled soulmate (the regenerate flow posts the
// record it received back).
type SaveInput struct {
	Gender             string
	Ethnicities        []string
	SunSign            string
	MoonSign           string
	RisingSign         string
	CompatibilityScore int
	Analysis           string
	ShortDescription   string
	ImageURL           string
}

// Save stores a client-provided soulmate after validating it.
func (s *SoulmateService) Save(ctx context.Context, userID string, in SaveInput) (*domain.Soulmate, error) {
	ctx, span := otel.Tracer("services/SoulmateService").Start(ctx, "Save",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	signs := make([]astro.Sign, 0, 3)
	for _, raw := range []string{in.SunSign, in.MoonSign, in.RisingSign} {
		sg, ok := astro.ParseSign(raw)
		if !ok {
			return nil, invalid("unknown sign %q", raw)
		}
		signs = append(signs, sg)
	}
	if in.CompatibilityScore < 0 || in.CompatibilityScore > 100 {
		return nil, invalid("compatibility score must be within 0-100")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, invalid("image url is required")
	}
	gender := strings.TrimSpace(in.Gender)
	if gender == "" {
		return nil, invalid("gender is required")
	}

	row := &domain.Soulmate{
		UserID: userID,
		PersonalInfo: datatypes.NewJSONType(domain.SoulmatePersonalInfo{
			Name:      soulmateName,
			Gender:    gender,
			Ethnicity: cleanTags(in.Ethnicities),
		}),
		AstrologicalInfo: datatypes.NewJSONType(domain.SoulmateAstroInfo{
			SunSign:      signs[0].String(),
			MoonSign:     signs[1].String(),
			RisingSign:   signs[2].String(),
			SoulmateSign: signs[0].String(),
		}),
		CompatibilityInfo: datatypes.NewJSONType(domain.CompatibilityInfo{
			CompatibilityScore: in.CompatibilityScore,
			Analysis:           in.Analysis,
			ShortDescription:   in.ShortDescription,
		}),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: s.now(),
	}
	if err := repo.CreateSoulmate(ctx, s.DB, row); err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteLatest removes the newest soulmate, used before regenerating.
func (s *SoulmateService) DeleteLatest(ctx context.Context, userID string) (*domain.Soulmate, error) {
	ctx, span := otel.Tracer("services/SoulmateService").Start(ctx, "DeleteLatest",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	sm, err := repo.DeleteLatestSoulmate(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSoulmateNotFound
	}
	return sm, err
}

// Get loads one soulmate by id for replaying idempotent requests.
func (s *SoulmateService) Get(ctx context.Context, userID, id string) (*domain.Soulmate, error) {
	sm, err := repo.GetSoulmate(ctx, s.DB, userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSoulmateNotFound
	}
	return sm, err
}

// PortraitPrompt builds the image prompt for a soulmate of userSign.
func PortraitPrompt(userSign astro.Sign, gender string, ethnicities []string) string {
	return fmt.Sprintf("Create a detailed sketch portrait of a %s person of %s ethnicity who would be astrologically compatible with a %s. "+
		"The person should have kind, intelligent eyes and an approachable, warm expression. "+
		"Draw them in a realistic portrait style with soft shading, showing someone who embodies the complementary qualities that would harmonize perfectly with a %s personality. "+
		"The portrait should be a pencil sketch style with detailed facial features, expressing wisdom, compassion, and the specific traits that would create a deep cosmic connection with %s.",
		gender, llm.JoinEthnicities(ethnicities), userSign, userSign, userSign)
}

// ShortDescription is the one-line teaser shown on the result card.
func ShortDescription(soulmateSign, rising astro.Sign) string {
	return fmt.Sprintf("Your passion meets their fiery %s spirit, igniting thrilling adventures, while your shared %s rising fosters an intense emotional bond, creating an unbreakable connection.",
		soulmateSign, rising)
}

// ResultFromRecord flattens a stored soulmate into the API payload.
func ResultFromRecord(sm *domain.Soulmate) *SoulmateResult {
	a := sm.AstrologicalInfo.Data()
	c := sm.CompatibilityInfo.Data()
	return &SoulmateResult{
		ID:                 sm.ID,
		ImageURL:           sm.ImageURL,
		SoulmateSign:       astro.Sign(a.SoulmateSign),
		CompatibilityScore: c.CompatibilityScore,
		Analysis:           c.Analysis,
		SunSign:            astro.Sign(a.SunSign),
		MoonSign:           astro.Sign(a.MoonSign),
		RisingSign:         astro.Sign(a.RisingSign),
		ShortDescription:   c.ShortDescription,
		CreatedAt:          sm.CreatedAt,
	}
}

func normalizeGenerateInput(in GenerateInput) (astro.Sign, string, []string, error) {
	sign, ok := astro.ParseSign(in.UserSign)
	if !ok {
		return "", "", nil, invalid("unknown user sign %q", in.UserSign)
	}
	gender := strings.TrimSpace(in.Gender)
	if gender == "" {
		return "", "", nil, invalid("gender preference is required")
	}
	if len([]rune(gender)) > maxGenderRunes {
		return "", "", nil, invalid("gender preference is too long")
	}
	if in.Ethnicities == nil {
		return "", "", nil, invalid("ethnicity preference is required")
	}
	tags := cleanTags(in.Ethnicities)
	if len(tags) > maxEthnicityTags {
		return "", "", nil, invalid("at most %d ethnicity tags are allowed", maxEthnicityTags)
	}
	return sign, gender, tags, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *SoulmateService) drawSign() astro.Sign {
	i := int(math.Floor(s.rand() * float64(len(astro.Signs))))
	return astro.Signs[clamp(i, 0, len(astro.Signs)-1)]
}

func (s *SoulmateService) drawScore() int {
	span := maxSoulmateScore - minSoulmateScore + 1
	return clamp(minSoulmateScore+int(math.Floor(s.rand()*float64(span))), minSoulmateScore, maxSoulmateScore)
}

func (s *SoulmateService) rand() float64 {
	if s.Rand != nil {
		return s.Rand()
	}
	return rand.Float64()
}

func (s *SoulmateService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SoulmateService) cooldown() time.Duration {
	if s.Cooldown > 0 {
		return s.Cooldown
	}
	return DefaultCooldown
}

func (s *SoulmateService) record(span trace.Span, err error) {
	outcome := outcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrCooldown):
		outcome = outcomeCooldown
	case errors.Is(err, ErrInvalidInput):
		outcome = outcomeInvalid
	case errors.Is(err, ErrMisconfigured):
		outcome = outcomeMisconfigured
	default:
		outcome = outcomeFailed
	}
	soulmateGenerations.WithLabelValues(outcome).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
