package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/http/middleware"
)

// HeaderStripeSignature carries the webhook signature.
const HeaderStripeSignature = "Stripe-Signature"

// maxWebhookBytes bounds the webhook body read.
const maxWebhookBytes = 64 << 10

// CheckoutResponse carries the hosted checkout URL.
type CheckoutResponse struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1"`
}

// CancelResponse acknowledges a scheduled cancellation.
type CancelResponse struct {
	Message  string     `json:"message" example:"Subscription canceled successfully"`
	Status   string     `json:"status" example:"canceled"`
	CancelAt *time.Time `json:"cancelAt"`
}

// WebhookResponse acknowledges a processed event.
type WebhookResponse struct {
	Received bool `json:"received" example:"true"`
}

// CreateCheckout godoc
// @ID          createCheckout
// @Summary     Start a subscription checkout
// @Tags        Billing
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.CheckoutResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     503  {object}  handlers.ErrorResponse  "Misconfigured"
// @Router      /billing/checkout-session [post]
func (h *Handlers) CreateCheckout(c *gin.Context) {
	url, err := h.billing.CreateCheckout(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, CheckoutResponse{URL: url})
}

// SubscriptionStatus godoc
// @ID          subscriptionStatus
// @Summary     Subscription status
// @Description Status is one of none, active, canceled or past_due.
// @Tags        Billing
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  services.SubscriptionStatus
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /billing/subscription-status [get]
func (h *Handlers) SubscriptionStatus(c *gin.Context) {
	st, err := h.billing.Status(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}

// CancelSubscription godoc
// @ID          cancelSubscription
// @Summary     Cancel at period end
// @Tags        Billing
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.CancelResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "No subscription"
// @Failure     503  {object}  handlers.ErrorResponse  "Misconfigured"
// @Router      /billing/cancel-subscription [post]
func (h *Handlers) CancelSubscription(c *gin.Context) {
	st, err := h.billing.Cancel(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, CancelResponse{
		Message:  "Subscription canceled successfully",
		Status:   st.Status,
		CancelAt: st.SubscriptionEndDate,
	})
}

// StripeWebhook godoc
// @ID          stripeWebhook
// @Summary     Stripe webhook
// @Description Verifies the Stripe-Signature header over the raw body and syncs subscription state.
// @Tags        Billing
// @Accept      json
// @Produce     json
// @Param       Stripe-Signature  header  string  true  "Stripe signature"
// @Success     200  {object}  handlers.WebhookResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad signature"
// @Failure     503  {object}  handlers.ErrorResponse  "Misconfigured"
// @Router      /webhook/stripe [post]
func (h *Handlers) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unreadable body")
		return
	}
	if err := h.billing.HandleWebhook(c.Request.Context(), payload, c.GetHeader(HeaderStripeSignature)); err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, WebhookResponse{Received: true})
}
