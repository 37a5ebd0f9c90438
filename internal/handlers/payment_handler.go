package handlers

import (
	"io"
	"net/http"

	"skillsprint/internal/apperr"
	"skillsprint/internal/logger"
	"skillsprint/internal/service"
)

const maxWebhookBytes = 64 << 10

// PaymentHandler starts checkouts and receives provider webhooks
type PaymentHandler struct {
	payments *service.PaymentService
	log      *logger.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, log: log}
}

// CreateCheckout opens a hosted checkout session for the current user
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.log)
	if !ok {
		return
	}

	session, err := h.payments.CreateCheckout(r.Context(), user)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": session.ID, "url": session.URL})
}

// Webhook applies a signed provider event
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, h.log, apperr.Validation("Invalid payload"))
		return
	}

	if err := h.payments.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
