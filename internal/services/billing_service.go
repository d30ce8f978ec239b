package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/sidus-backend/internal/billing"
	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/repo"
)

// PaymentGateway is the slice of Stripe the billing flows need.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, userID string) (string, error)
	GetSubscription(ctx context.Context, id string) (*billing.Subscription, error)
	CancelAtPeriodEnd(ctx context.Context, id string) (*billing.Subscription, error)
	ParseEvent(payload []byte, signature string) (*billing.Event, error)
}

// SubscriptionStatus is the billing state exposed to clients.
type SubscriptionStatus struct {
	Status              string     `json:"status"`
	TrialEndDate        *time.Time `json:"trialEndDate"`
	SubscriptionEndDate *time.Time `json:"subscriptionEndDate"`
}

// BillingService runs checkout, cancellation and webhook sync.
type BillingService struct {
	DB      *gorm.DB
	Gateway PaymentGateway
}

// CreateCheckout returns a hosted checkout URL for userID.
func (s *BillingService) CreateCheckout(ctx context.Context, userID string) (string, error) {
	ctx, span := otel.Tracer("services/BillingService").Start(ctx, "CreateCheckout",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	start := time.Now()
	url, err := s.Gateway.CreateCheckoutSession(ctx, userID)
	observeExternal("stripe", "checkout", start)
	if err != nil {
		if isConfigError(err) {
			return "", fmt.Errorf("%w: %w", ErrMisconfigured, err)
		}
		return "", err
	}
	return url, nil
}

// Status reports the stored subscription state. Users without a row are
// "none".
func (s *BillingService) Status(ctx context.Context, userID string) (*SubscriptionStatus, error) {
	st, err := repo.GetUserStats(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return &SubscriptionStatus{Status: domain.SubscriptionNone}, nil
	}
	if err != nil {
		return nil, err
	}
	out := &SubscriptionStatus{
		Status:              st.SubscriptionStatus,
		TrialEndDate:        st.TrialEndDate,
		SubscriptionEndDate: st.SubscriptionEndDate,
	}
	if out.Status == "" {
		out.Status = domain.SubscriptionNone
	}
	return out, nil
}

// Cancel schedules the user's subscription to end with the current period.
func (s *BillingService) Cancel(ctx context.Context, userID string) (*SubscriptionStatus, error) {
	ctx, span := otel.Tracer("services/BillingService").Start(ctx, "Cancel",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	st, err := repo.GetUserStats(ctx, s.DB, userID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && (st.StripeSubscriptionID == nil || *st.StripeSubscriptionID == "")) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sub, err := s.Gateway.CancelAtPeriodEnd(ctx, *st.StripeSubscriptionID)
	observeExternal("stripe", "cancel", start)
	if err != nil {
		if isConfigError(err) {
			return nil, fmt.Errorf("%w: %w", ErrMisconfigured, err)
		}
		return nil, err
	}

	canceled := domain.SubscriptionCanceled
	if _, err := repo.UpdateSubscriptionFields(ctx, s.DB, userID, repo.SubscriptionUpdate{
		Status:              canceled,
		SubscriptionEndDate: sub.CurrentPeriodEnd,
	}); err != nil {
		return nil, err
	}
	return &SubscriptionStatus{
		Status:              canceled,
		TrialEndDate:        st.TrialEndDate,
		SubscriptionEndDate: sub.CurrentPeriodEnd,
	}, nil
}

// HandleWebhook verifies and applies one Stripe event. Unhandled types are
// acknowledged without changes.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := s.Gateway.ParseEvent(payload, signature)
	if err != nil {
		if errors.Is(err, billing.ErrNotConfigured) {
			return fmt.Errorf("%w: %w", ErrMisconfigured, err)
		}
		return err
	}
	ctx, span := otel.Tracer("services/BillingService").Start(ctx, "HandleWebhook",
		trace.WithAttributes(
			attribute.String("stripe.event_id", ev.ID),
			attribute.String("stripe.event_type", ev.Type),
		),
	)
	defer span.End()
	lg := log.Ctx(ctx).With().Str("event_id", ev.ID).Str("event_type", ev.Type).Logger()

	switch ev.Type {
	case billing.EventSubscriptionCreated, billing.EventSubscriptionUpdated:
		sub := ev.Subscription
		if sub == nil || sub.UserID == "" {
			lg.Warn().Msg("subscription event without user metadata")
			return nil
		}
		status := billing.MapStatus(sub.Status)
		return repo.UpsertSubscription(ctx, s.DB, sub.UserID, repo.SubscriptionUpdate{
			Status:              status,
			CustomerID:          optString(sub.CustomerID),
			SubscriptionID:      optString(sub.ID),
			TrialEndDate:        sub.TrialEnd,
			SubscriptionEndDate: sub.CurrentPeriodEnd,
		})

	case billing.EventSubscriptionDeleted:
		sub := ev.Subscription
		if sub == nil || sub.UserID == "" {
			lg.Warn().Msg("subscription deletion without user metadata")
			return nil
		}
		_, err := repo.ClearSubscription(ctx, s.DB, sub.UserID)
		return err

	case billing.EventCheckoutCompleted:
		cc := ev.Checkout
		if cc == nil || cc.UserID == "" {
			lg.Warn().Msg("checkout without user reference")
			return nil
		}
		active := domain.SubscriptionActive
		_, err := repo.UpdateSubscriptionFields(ctx, s.DB, cc.UserID, repo.SubscriptionUpdate{
			Status:         active,
			SubscriptionID: optString(cc.SubscriptionID),
			CustomerID:     optString(cc.CustomerID),
		})
		return err

	case billing.EventInvoiceSucceeded, billing.EventInvoiceFailed:
		if ev.InvoiceSubscriptionID == "" {
			return nil
		}
		userID, err := s.invoiceUser(ctx, ev.InvoiceSubscriptionID)
		if err != nil {
			return err
		}
		if userID == "" {
			lg.Warn().Str("subscription_id", ev.InvoiceSubscriptionID).Msg("invoice for unknown user")
			return nil
		}
		status := domain.SubscriptionActive
		if ev.Type == billing.EventInvoiceFailed {
			status = domain.SubscriptionPastDue
		}
		_, err = repo.UpdateSubscriptionFields(ctx, s.DB, userID, repo.SubscriptionUpdate{Status: status})
		return err
	}

	lg.Debug().Msg("unhandled stripe event")
	return nil
}

// invoiceUser resolves the owner of a subscription through its metadata,
// falling back to the stored subscription id.
func (s *BillingService) invoiceUser(ctx context.Context, subscriptionID string) (string, error) {
	start := time.Now()
	sub, err := s.Gateway.GetSubscription(ctx, subscriptionID)
	observeExternal("stripe", "get_subscription", start)
	if err == nil && sub.UserID != "" {
		return sub.UserID, nil
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("subscription_id", subscriptionID).Msg("lookup subscription")
	}
	st, err := repo.FindBySubscriptionID(ctx, s.DB, subscriptionID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return st.UserID, nil
}

func optString(v string) *string {
	if v = strings.TrimSpace(v); v == "" {
		return nil
	}
	return &v
}
