package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/http/middleware"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

// ---------- fakes ----------

type fakeSoulmates struct {
	generate     func(context.Context, string, services.GenerateInput) (*services.SoulmateResult, error)
	latest       func(context.Context, string) (*domain.Soulmate, error)
	list         func(context.Context, string) ([]domain.Soulmate, error)
	get          func(context.Context, string, string) (*domain.Soulmate, error)
	save         func(context.Context, string, services.SaveInput) (*domain.Soulmate, error)
	deleteLatest func(context.Context, string) (*domain.Soulmate, error)
}

func (f *fakeSoulmates) Generate(ctx context.Context, u string, in services.GenerateInput) (*services.SoulmateResult, error) {
	return f.generate(ctx, u, in)
}

func (f *fakeSoulmates) Latest(ctx context.Context, u string) (*domain.Soulmate, error) {
	return f.latest(ctx, u)
}

func (f *fakeSoulmates) List(ctx context.Context, u string) ([]domain.Soulmate, error) {
	return f.list(ctx, u)
}

func (f *fakeSoulmates) Get(ctx context.Context, u, id string) (*domain.Soulmate, error) {
	return f.get(ctx, u, id)
}

func (f *fakeSoulmates) Save(ctx context.Context, u string, in services.SaveInput) (*domain.Soulmate, error) {
	return f.save(ctx, u, in)
}

func (f *fakeSoulmates) DeleteLatest(ctx context.Context, u string) (*domain.Soulmate, error) {
	return f.deleteLatest(ctx, u)
}

type fakeProfiles struct {
	save func(context.Context, string, services.BirthInput) (*services.Profile, error)
	get  func(context.Context, string) (*services.Profile, error)
}

func (f *fakeProfiles) SaveBirthChart(ctx context.Context, u string, in services.BirthInput) (*services.Profile, error) {
	return f.save(ctx, u, in)
}

func (f *fakeProfiles) Get(ctx context.Context, u string) (*services.Profile, error) {
	return f.get(ctx, u)
}

type fakePeople struct {
	add   func(context.Context, string, services.PersonInput) (*domain.Person, error)
	list  func(context.Context, string) ([]services.PersonEntry, error)
	etag  string
	lists int
}

func (f *fakePeople) Add(ctx context.Context, u string, in services.PersonInput) (*domain.Person, error) {
	return f.add(ctx, u, in)
}

func (f *fakePeople) List(ctx context.Context, u string) ([]services.PersonEntry, error) {
	f.lists++
	return f.list(ctx, u)
}

func (f *fakePeople) ETag(context.Context, string) (string, error) { return f.etag, nil }

type fakeChat struct {
	reply   func(context.Context, string, string, []llm.Message) (string, error)
	history func(context.Context, string, string, int, int) ([]domain.ChatMessage, int64, error)
}

func (f *fakeChat) Reply(ctx context.Context, u, ct string, msgs []llm.Message) (string, error) {
	return f.reply(ctx, u, ct, msgs)
}

func (f *fakeChat) History(ctx context.Context, u, ct string, p, ps int) ([]domain.ChatMessage, int64, error) {
	return f.history(ctx, u, ct, p, ps)
}

type fakeCities struct{ got string }

func (f *fakeCities) Search(_ context.Context, q string) []string {
	f.got = q
	if len(q) < 2 {
		return nil
	}
	return []string{"Lisbon, Portugal"}
}

type fakeBilling struct {
	checkout func(context.Context, string) (string, error)
	status   func(context.Context, string) (*services.SubscriptionStatus, error)
	cancel   func(context.Context, string) (*services.SubscriptionStatus, error)
	webhook  func(context.Context, []byte, string) error
}

func (f *fakeBilling) CreateCheckout(ctx context.Context, u string) (string, error) {
	return f.checkout(ctx, u)
}

func (f *fakeBilling) Status(ctx context.Context, u string) (*services.SubscriptionStatus, error) {
	return f.status(ctx, u)
}

func (f *fakeBilling) Cancel(ctx context.Context, u string) (*services.SubscriptionStatus, error) {
	return f.cancel(ctx, u)
}

func (f *fakeBilling) HandleWebhook(ctx context.Context, payload []byte, sig string) error {
	return f.webhook(ctx, payload, sig)
}

type idemEntry struct{ resource string }

// memIdem is an in-memory IdempotencyStore that also serves the
// middleware lookup.
type memIdem struct {
	m map[string]idemEntry
}

func newMemIdem() *memIdem { return &memIdem{m: map[string]idemEntry{}} }

func (s *memIdem) k(u, scope, key string) string { return u + "|" + scope + "|" + key }

func (s *memIdem) Resource(_ context.Context, u, scope, key string) (string, bool) {
	e, ok := s.m[s.k(u, scope, key)]
	return e.resource, ok
}

func (s *memIdem) Remember(_ context.Context, u, scope, key, id string, _ int) {
	s.m[s.k(u, scope, key)] = idemEntry{resource: id}
}

func (s *memIdem) Exists(_ context.Context, u, scope, key string, _ time.Time) (bool, error) {
	_, ok := s.m[s.k(u, scope, key)]
	return ok, nil
}

// ---------- router + request helpers ----------

// newTestRouter mounts every handler the way the real router does, with
// development identity via X-User-ID.
func newTestRouter(h *Handlers, idem *memIdem) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Authenticate(middleware.AuthOptions{AllowUserHeader: true}))
	var lookup middleware.IdempotencyLookup
	if idem != nil {
		lookup = idem.Exists
	}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{
		Scope: middleware.ScopeByRoute(map[string]string{"POST /soulmate": "soulmate"}),
	}, lookup))

	r.GET("/astro/compatibility", h.Compatibility)
	r.POST("/astro/big-three", h.BigThree)
	r.GET("/cities", h.SearchCities)
	r.POST("/webhook/stripe", h.StripeWebhook)

	g := r.Group("/", middleware.RequireUser())
	g.POST("/soulmate", h.GenerateSoulmate)
	g.GET("/soulmate", h.LatestSoulmate)
	g.POST("/soulmates", h.SaveSoulmate)
	g.GET("/soulmates", h.ListSoulmates)
	g.DELETE("/soulmates", h.DeleteLatestSoulmate)
	g.POST("/profile", h.SaveProfile)
	g.GET("/profile", h.GetProfile)
	g.POST("/people", h.AddPerson)
	g.GET("/people", h.ListPeople)
	g.POST("/chat", h.Chat)
	g.GET("/chat/history", h.ChatHistory)
	g.POST("/billing/checkout-session", h.CreateCheckout)
	g.GET("/billing/subscription-status", h.SubscriptionStatus)
	g.POST("/billing/cancel-subscription", h.CancelSubscription)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func asUser(uid string) map[string]string { return map[string]string{middleware.HeaderUserID: uid} }

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Code
}
