// Package payments wraps the hosted checkout and webhook API of the payment provider.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"skillsprint/internal/apperr"
)

const (
	// ProPriceCents is the monthly price of the Pro subscription
	ProPriceCents = 499
	proName       = "SkillSprint Pro Subscription"
	proDesc       = "Unlimited daily practice and advanced AI insights."
)

// ErrNotConfigured is returned when no secret key is set
var ErrNotConfigured = errors.New("payments are not configured")

// CheckoutSession is a hosted checkout page the client is redirected to
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEvent is the subset of a provider event the application acts on
type WebhookEvent struct {
	Type              string
	ClientReferenceID string
	CustomerID        string
}

// Provider creates checkout sessions and authenticates webhook payloads
type Provider interface {
	CreateCheckout(ctx context.Context, userID, email string) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// StripeProvider implements Provider with Stripe Checkout
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	frontendURL   string
}

// Compile-time check: *StripeProvider satisfies the Provider interface.
var _ Provider = (*StripeProvider)(nil)

// NewStripeProvider creates a provider. backends may be nil to use Stripe's API.
func NewStripeProvider(secretKey, webhookSecret, frontendURL string, backends *stripe.Backends) *StripeProvider {
	var api *client.API
	if secretKey != "" {
		api = client.New(secretKey, backends)
	}
	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
	}
}

// VerifiesSignatures reports whether webhook payloads are authenticated
func (p *StripeProvider) VerifiesSignatures() bool {
	return p.webhookSecret != ""
}

// CreateCheckout starts a monthly subscription checkout for userID
func (p *StripeProvider) CreateCheckout(ctx context.Context, userID, email string) (*CheckoutSession, error) {
	if p.api == nil {
		return nil, apperr.Upstream("Payments are not configured", ErrNotConfigured)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(proName),
						Description: stripe.String(proDesc),
					},
					UnitAmount: stripe.Int64(ProPriceCents),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(p.frontendURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(p.frontendURL + "/dashboard"),
		ClientReferenceID: stripe.String(userID),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.Context = ctx

	session, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, apperr.Upstream("Failed to create checkout session", err)
	}

	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// ParseWebhook authenticates and decodes a webhook payload. Without a
// configured webhook secret the payload is decoded unverified.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	var event stripe.Event
	if p.webhookSecret != "" {
		var err error
		event, err = webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret,
			webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
		if err != nil {
			return nil, apperr.ValidationError{Field: "payload", Message: fmt.Sprintf("invalid webhook: %v", err)}
		}
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return nil, apperr.ValidationError{Field: "payload", Message: fmt.Sprintf("invalid webhook payload: %v", err)}
	}

	result := &WebhookEvent{Type: string(event.Type)}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted || event.Data == nil {
		return result, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, apperr.ValidationError{Field: "payload", Message: fmt.Sprintf("invalid checkout session: %v", err)}
	}
	result.ClientReferenceID = session.ClientReferenceID
	if session.Customer != nil {
		result.CustomerID = session.Customer.ID
	}
	return result, nil
}
