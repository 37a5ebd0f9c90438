package service

import (
	"context"
	"errors"

	"skillsprint/internal/apperr"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/payments"
	"skillsprint/internal/repository"
)

const eventCheckoutCompleted = "checkout.session.completed"

// PaymentService starts Pro checkouts and applies payment provider events
type PaymentService struct {
	provider payments.Provider
	userRepo *repository.UserRepository
	log      *logger.Logger
}

// signatureVerifier is implemented by providers that can authenticate webhooks
type signatureVerifier interface {
	VerifiesSignatures() bool
}

// NewPaymentService creates a new payment service
func NewPaymentService(provider payments.Provider, userRepo *repository.UserRepository, log *logger.Logger) *PaymentService {
	if v, ok := provider.(signatureVerifier); ok && !v.VerifiesSignatures() {
		log.Warn("webhook secret is not set; payment webhooks are accepted without signature verification")
	}
	return &PaymentService{provider: provider, userRepo: userRepo, log: log}
}

// CreateCheckout starts a hosted checkout for the user's Pro subscription
func (s *PaymentService) CreateCheckout(ctx context.Context, user *models.User) (*payments.CheckoutSession, error) {
	session, err := s.provider.CreateCheckout(ctx, user.ID, user.Email)
	if err != nil {
		if errors.Is(err, payments.ErrNotConfigured) {
			return nil, apperr.Upstream("Payments are not configured", err)
		}
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, apperr.Upstream("Failed to create checkout session", err)
	}
	return session, nil
}

// HandleWebhook parses a provider event and marks the referenced user as Pro
// on a completed checkout. Other events are acknowledged without changes.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event.Type != eventCheckoutCompleted || event.ClientReferenceID == "" {
		s.log.Debug("ignoring payment event", "type", event.Type)
		return nil
	}

	updated, err := s.userRepo.MarkPro(ctx, event.ClientReferenceID, event.CustomerID)
	if err != nil {
		return err
	}
	if updated {
		s.log.Info("user upgraded to pro", "user_id", event.ClientReferenceID)
	} else {
		s.log.Warn("checkout completed for unknown user", "user_id", event.ClientReferenceID)
	}
	return nil
}
