package handlers

import (
	"net/http"

	"skillsprint/internal/logger"
)

// Handlers groups everything the API router dispatches to
type Handlers struct {
	Middleware *Middleware
	Auth       *AuthHandler
	OAuth      *OAuthHandler
	Practice   *PracticeHandler
	Dashboard  *DashboardHandler
	Habits     *HabitHandler
	Skills     *SkillHandler
	Payments   *PaymentHandler
}

// NewRouter builds the HTTP handler. With h nil only the health endpoints are
// served and every other route answers 503.
func NewRouter(h *Handlers, status *StartupStatus, log *logger.Logger) http.Handler {
	api := http.NewServeMux()
	if h != nil {
		registerAPI(api, h)
	}
	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": ErrNotFound})
	})

	root := http.NewServeMux()
	root.HandleFunc("GET /health", status.Health)
	root.HandleFunc("GET "+APIPrefix+"/health", status.Health)
	root.Handle("/", status.RequireReady(api))

	return Logging(log, CORS(root))
}

func registerAPI(mux *http.ServeMux, h *Handlers) {
	m := h.Middleware
	p := APIPrefix

	mux.HandleFunc("POST "+p+"/auth/register", m.RateLimit(h.Auth.Register))
	mux.HandleFunc("POST "+p+"/auth/login", m.RateLimit(h.Auth.Login))
	if h.OAuth != nil {
		mux.HandleFunc("GET "+p+"/auth/oauth/{provider}/start", h.OAuth.Start)
		mux.HandleFunc("GET "+p+"/auth/oauth/{provider}/callback", h.OAuth.Callback)
	}

	mux.HandleFunc("GET "+p+"/users/me", m.RequireAuth(h.Auth.Me))
	mux.HandleFunc("POST "+p+"/users/goals", m.RequireAuth(h.Auth.SetGoal))
	mux.HandleFunc("PUT "+p+"/users/goals", m.RequireAuth(h.Auth.SetGoal))

	mux.HandleFunc("GET "+p+"/practice/daily", m.RequireAuth(h.Practice.Daily))
	mux.HandleFunc("POST "+p+"/practice/generate", m.RequireAuth(h.Practice.Generate))
	mux.HandleFunc("POST "+p+"/practice/submit", m.RequireAuth(h.Practice.Submit))

	mux.HandleFunc("GET "+p+"/dashboard/stats", m.RequireAuth(h.Dashboard.Stats))
	mux.HandleFunc("GET "+p+"/analytics/summary", m.RequireAuth(h.Dashboard.Summary))

	mux.HandleFunc("GET "+p+"/habits", m.RequireAuth(h.Habits.List))
	mux.HandleFunc("POST "+p+"/habits", m.RequireAuth(h.Habits.Create))
	mux.HandleFunc("GET "+p+"/habits/heatmap", m.RequireAuth(h.Habits.Heatmap))
	mux.HandleFunc("PUT "+p+"/habits/{id}", m.RequireAuth(h.Habits.Update))
	mux.HandleFunc("DELETE "+p+"/habits/{id}", m.RequireAuth(h.Habits.Delete))
	mux.HandleFunc("POST "+p+"/habits/{id}/log", m.RequireAuth(h.Habits.Log))

	mux.HandleFunc("GET "+p+"/skills", m.RequireAuth(h.Skills.List))
	mux.HandleFunc("POST "+p+"/skills", m.RequireAuth(h.Skills.Create))
	mux.HandleFunc("DELETE "+p+"/skills/{id}", m.RequireAuth(h.Skills.Delete))
	mux.HandleFunc("POST "+p+"/skills/{id}/topics", m.RequireAuth(h.Skills.AddTopic))
	mux.HandleFunc("GET "+p+"/skills/{id}/progress", m.RequireAuth(h.Skills.GetProgress))
	mux.HandleFunc("PUT "+p+"/skills/{id}/progress", m.RequireAuth(h.Skills.UpdateProgress))

	mux.HandleFunc("POST "+p+"/payments/create-checkout-session", m.RequireAuth(h.Payments.CreateCheckout))
	mux.HandleFunc("POST "+p+"/payments/webhook", h.Payments.Webhook)
}
