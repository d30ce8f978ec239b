// Package handlers implements the Sidus REST endpoints. Handlers are
// transport-thin: they bind and validate input, call a service and
// translate the result, or the service error, into a response.
//
// Success bodies for the app-facing resources use the envelope
//
//	{ "success": true, "data": ... }
//
// and errors use ErrorResponse.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/services"
	"github.com/tbourn/sidus-backend/internal/utils"
)

// HeaderIdempotencyReplayed marks a response served from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SoulmateService generates and stores soulmates.
type SoulmateService interface {
	Generate(ctx context.Context, userID string, in services.GenerateInput) (*services.SoulmateResult, error)
	Latest(ctx context.Context, userID string) (*domain.Soulmate, error)
	List(ctx context.Context, userID string) ([]domain.Soulmate, error)
	Get(ctx context.Context, userID, id string) (*domain.Soulmate, error)
	Save(ctx context.Context, userID string, in services.SaveInput) (*domain.Soulmate, error)
	DeleteLatest(ctx context.Context, userID string) (*domain.Soulmate, error)
}

// ProfileService stores the onboarding birth chart.
type ProfileService interface {
	SaveBirthChart(ctx context.Context, userID string, in services.BirthInput) (*services.Profile, error)
	Get(ctx context.Context, userID string) (*services.Profile, error)
}

// PeopleService manages saved contacts.
type PeopleService interface {
	Add(ctx context.Context, userID string, in services.PersonInput) (*domain.Person, error)
	List(ctx context.Context, userID string) ([]services.PersonEntry, error)
	ETag(ctx context.Context, userID string) (string, error)
}

// ChatService answers themed conversations.
type ChatService interface {
	Reply(ctx context.Context, userID, chatType string, msgs []llm.Message) (string, error)
	History(ctx context.Context, userID, chatType string, page, pageSize int) ([]domain.ChatMessage, int64, error)
}

// CityService autocompletes birth locations.
type CityService interface {
	Search(ctx context.Context, q string) []string
}

// BillingService runs subscription checkout and Stripe sync.
type BillingService interface {
	CreateCheckout(ctx context.Context, userID string) (string, error)
	Status(ctx context.Context, userID string) (*services.SubscriptionStatus, error)
	Cancel(ctx context.Context, userID string) (*services.SubscriptionStatus, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// IdempotencyStore maps a completed keyed request to the resource it made.
type IdempotencyStore interface {
	Resource(ctx context.Context, userID, scope, key string) (string, bool)
	Remember(ctx context.Context, userID, scope, key, resourceID string, status int)
}

// Services bundles the handler dependencies. Idempotency may be nil.
type Services struct {
	Soulmates   SoulmateService
	Profiles    ProfileService
	People      PeopleService
	Chat        ChatService
	Cities      CityService
	Billing     BillingService
	Idempotency IdempotencyStore
	// Now is used by the pure astro endpoints; defaults to time.Now.
	Now func() time.Time
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	soulmates SoulmateService
	profiles  ProfileService
	people    PeopleService
	chat      ChatService
	cities    CityService
	billing   BillingService
	idem      IdempotencyStore
	now       func() time.Time
}

// New constructs Handlers bound to svcs.
func New(svcs Services) *Handlers {
	now := svcs.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		soulmates: svcs.Soulmates,
		profiles:  svcs.Profiles,
		people:    svcs.People,
		chat:      svcs.Chat,
		cities:    svcs.Cities,
		billing:   svcs.Billing,
		idem:      svcs.Idempotency,
		now:       now,
	}
}

// clampPagination reads page and page_size from the query.
func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.ClampPage(c.Query("page"), c.Query("page_size"), defaultPageSize, maxPageSize)
}

func pagination(page, pageSize int, total int64) Pagination {
	pages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
	}
}
