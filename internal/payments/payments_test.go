package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"skillsprint/internal/apperr"
)

func checkoutCompletedPayload(t *testing.T, userID, customerID string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test_1",
		"object":      "event",
		"type":        "checkout.session.completed",
		"api_version": stripe.APIVersion,
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":                  "cs_test_1",
				"object":              "checkout.session",
				"client_reference_id": userID,
				"customer":            customerID,
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func TestParseWebhookSigned(t *testing.T) {
	secret := "whsec_test"
	provider := NewStripeProvider("", secret, "http://localhost:5173", nil)
	require.True(t, provider.VerifiesSignatures())

	payload := checkoutCompletedPayload(t, "user-1", "cus_123")
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})

	event, err := provider.ParseWebhook(signed.Payload, signed.Header)
	require.NoError(t, err)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.Equal(t, "user-1", event.ClientReferenceID)
	assert.Equal(t, "cus_123", event.CustomerID)

	t.Run("bad signature", func(t *testing.T) {
		_, err := provider.ParseWebhook(payload, "t=1,v1=deadbeef")
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestParseWebhookUnsigned(t *testing.T) {
	provider := NewStripeProvider("", "", "http://localhost:5173", nil)

	event, err := provider.ParseWebhook(checkoutCompletedPayload(t, "user-2", "cus_456"), "")
	require.NoError(t, err)
	assert.Equal(t, "user-2", event.ClientReferenceID)
	assert.Equal(t, "cus_456", event.CustomerID)

	other, err := provider.ParseWebhook([]byte(`{"id":"evt_2","object":"event","type":"invoice.paid","data":{"object":{}}}`), "")
	require.NoError(t, err)
	assert.Equal(t, "invoice.paid", other.Type)
	assert.Empty(t, other.ClientReferenceID)

	_, err = provider.ParseWebhook([]byte("not json"), "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateCheckout(t *testing.T) {
	var form map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "cs_test_42",
			"object": "checkout.session",
			"url":    "https://checkout.stripe.com/c/pay/cs_test_42",
		})
	}))
	defer server.Close()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(server.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	provider := NewStripeProvider("sk_test_123", "", "http://localhost:5173/", &stripe.Backends{
		API: backend, Connect: backend, Uploads: backend,
	})

	session, err := provider.CreateCheckout(context.Background(), "user-9", "pro@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_42", session.URL)

	assert.Equal(t, []string{"user-9"}, form["client_reference_id"])
	assert.Equal(t, []string{"subscription"}, form["mode"])
	assert.Equal(t, []string{"499"}, form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, []string{"month"}, form["line_items[0][price_data][recurring][interval]"])
	assert.Equal(t, []string{"http://localhost:5173/dashboard"}, form["cancel_url"])
}

func TestCreateCheckoutNotConfigured(t *testing.T) {
	provider := NewStripeProvider("", "", "http://localhost:5173", nil)
	_, err := provider.CreateCheckout(context.Background(), "user-1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}
