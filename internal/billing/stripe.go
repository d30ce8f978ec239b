// Package billing integrates Stripe subscriptions: hosted checkout,
// subscription lookup and cancellation, and verified webhook decoding.
// It knows nothing about persistence; services apply the decoded events.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// MetadataUserID is the metadata key linking Stripe objects to a user.
const MetadataUserID = "userId"

// Webhook event types handled by services.
const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventCheckoutCompleted   = "checkout.session.completed"
	EventInvoiceSucceeded    = "invoice.payment_succeeded"
	EventInvoiceFailed       = "invoice.payment_failed"
)

var (
	// ErrNotConfigured is returned when the Stripe secret key is missing.
	ErrNotConfigured = errors.New("billing: stripe not configured")
	// ErrInvalidSignature is returned when a webhook fails verification.
	ErrInvalidSignature = errors.New("billing: invalid webhook signature")
)

// Config holds Stripe credentials and checkout settings.
type Config struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
	TrialDays     int64
	SuccessURL    string
	CancelURL     string
	APIURL        string // optional backend override
}

// Subscription is the subset of a Stripe subscription the service stores.
type Subscription struct {
	ID               string
	Status           string
	CustomerID       string
	UserID           string
	TrialEnd         *time.Time
	CurrentPeriodEnd *time.Time
}

// CheckoutCompleted is the payload of checkout.session.completed.
type CheckoutCompleted struct {
	UserID         string
	SubscriptionID string
	CustomerID     string
}

// Event is a verified, decoded webhook. Exactly one of the payload fields
// is set for handled types; all are nil for anything else.
type Event struct {
	ID                    string
	Type                  string
	Subscription          *Subscription
	Checkout              *CheckoutCompleted
	InvoiceSubscriptionID string
}

// Gateway is a thin facade over the Stripe client.
type Gateway struct {
	sc  *client.API
	cfg Config
}

// NewGateway builds a Gateway. Without a secret key it is inert.
func NewGateway(cfg Config) *Gateway {
	g := &Gateway{cfg: cfg}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return g
	}
	var backends *stripe.Backends
	if cfg.APIURL != "" {
		backends = &stripe.Backends{
			API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
				URL:               stripe.String(cfg.APIURL),
				MaxNetworkRetries: stripe.Int64(0),
				LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
			}),
		}
	}
	g.sc = client.New(cfg.SecretKey, backends)
	return g
}

// Configured reports whether API calls can be made.
func (g *Gateway) Configured() bool { return g != nil && g.sc != nil }

// CreateCheckoutSession starts a subscription checkout for userID and
// returns the hosted checkout URL.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, userID string) (string, error) {
	if !g.Configured() || g.cfg.PriceID == "" {
		return "", ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(g.cfg.PriceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(g.cfg.SuccessURL),
		CancelURL:         stripe.String(g.cfg.CancelURL),
		ClientReferenceID: stripe.String(userID),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{MetadataUserID: userID},
		},
	}
	if g.cfg.TrialDays > 0 {
		params.SubscriptionData.TrialPeriodDays = stripe.Int64(g.cfg.TrialDays)
	}
	params.AddMetadata(MetadataUserID, userID)
	params.Context = ctx

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

// GetSubscription fetches a subscription by id.
func (g *Gateway) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	s, err := g.sc.Subscriptions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return fromStripe(s), nil
}

// CancelAtPeriodEnd schedules the subscription to end with its current
// billing period.
func (g *Gateway) CancelAtPeriodEnd(ctx context.Context, id string) (*Subscription, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}
	params := &stripe.SubscriptionParams{CancelAtPeriodEnd: stripe.Bool(true)}
	params.Context = ctx
	s, err := g.sc.Subscriptions.Update(id, params)
	if err != nil {
		return nil, fmt.Errorf("cancel subscription: %w", err)
	}
	return fromStripe(s), nil
}

// ParseEvent verifies the Stripe-Signature header and decodes payload.
func (g *Gateway) ParseEvent(payload []byte, signature string) (*Event, error) {
	if g == nil || g.cfg.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return decodeEvent(ev)
}

func decodeEvent(ev stripe.Event) (*Event, error) {
	out := &Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil {
		return out, nil
	}
	switch out.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var s stripe.Subscription
		if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out.Subscription = fromStripe(&s)
	case EventCheckoutCompleted:
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		cc := &CheckoutCompleted{UserID: cs.Metadata[MetadataUserID]}
		if cc.UserID == "" {
			cc.UserID = cs.ClientReferenceID
		}
		if cs.Subscription != nil {
			cc.SubscriptionID = cs.Subscription.ID
		}
		if cs.Customer != nil {
			cc.CustomerID = cs.Customer.ID
		}
		out.Checkout = cc
	case EventInvoiceSucceeded, EventInvoiceFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(ev.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("decode invoice: %w", err)
		}
		if inv.Subscription != nil {
			out.InvoiceSubscriptionID = inv.Subscription.ID
		}
	}
	return out, nil
}

func fromStripe(s *stripe.Subscription) *Subscription {
	out := &Subscription{
		ID:               s.ID,
		Status:           string(s.Status),
		UserID:           s.Metadata[MetadataUserID],
		TrialEnd:         unixPtr(s.TrialEnd),
		CurrentPeriodEnd: unixPtr(s.CurrentPeriodEnd),
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	return out
}

func unixPtr(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
