package billing

import "github.com/tbourn/sidus-backend/internal/domain"

// MapStatus folds a Stripe subscription status into the states stored on
// the user row. Trials count as active; unknown values pass through.
func MapStatus(stripeStatus string) string {
	switch stripeStatus {
	case "active", "trialing":
		return domain.SubscriptionActive
	case "canceled":
		return domain.SubscriptionCanceled
	case "past_due":
		return domain.SubscriptionPastDue
	case "unpaid", "incomplete", "incomplete_expired":
		return domain.SubscriptionNone
	default:
		return stripeStatus
	}
}
