package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"skillsprint/internal/apperr"
	"skillsprint/internal/logger"
	"skillsprint/internal/security"
	"skillsprint/internal/service"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthProviderCookie = "oauth_provider"
	oauthCookieTTL      = 10 * time.Minute
	oauthExchangeWait   = 10 * time.Second
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Label       string
	Config      *oauth2.Config
	UserInfoURL string
	AuthParams  map[string]string
}

func (p OAuthProvider) configured() bool {
	return p.Config != nil && p.Config.ClientID != "" && p.Config.ClientSecret != ""
}

type oauthUserInfo struct {
	Subject string
	Email   string
}

// OAuthHandler runs the authorization code flow and hands the browser a bearer token
type OAuthHandler struct {
	authService *service.AuthService
	providers   map[string]OAuthProvider
	baseURL     string
	frontendURL string
	log         *logger.Logger
}

// NewOAuthHandler creates an OAuth handler. An empty baseURL derives the
// callback host from the incoming request.
func NewOAuthHandler(authService *service.AuthService, providers map[string]OAuthProvider, baseURL, frontendURL string, log *logger.Logger) *OAuthHandler {
	return &OAuthHandler{
		authService: authService,
		providers:   providers,
		baseURL:     baseURL,
		frontendURL: frontendURL,
		log:         log,
	}
}

func (h *OAuthHandler) provider(r *http.Request) (string, OAuthProvider, error) {
	key := r.PathValue("provider")
	provider, ok := h.providers[key]
	if !ok || !provider.configured() {
		return "", OAuthProvider{}, apperr.Validation("OAuth provider not configured")
	}
	return key, provider, nil
}

// Start redirects the browser to the provider's consent page
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	key, provider, err := h.provider(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	state := security.GenerateState()
	http.SetCookie(w, security.TempCookie(r, oauthStateCookie, state, oauthCookieTTL))
	http.SetCookie(w, security.TempCookie(r, oauthProviderCookie, key, oauthCookieTTL))

	config := *provider.Config
	config.RedirectURL = h.redirectURL(r, key)

	options := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
	for k, v := range provider.AuthParams {
		options = append(options, oauth2.SetAuthURLParam(k, v))
	}

	http.Redirect(w, r, config.AuthCodeURL(state, options...), http.StatusFound)
}

// Callback completes the flow and redirects to the frontend with the token in the fragment
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	key, provider, err := h.provider(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, h.log, apperr.Validation("Missing authorization code"))
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, h.log, apperr.Validation("Invalid OAuth state"))
		return
	}
	if providerCookie, err := r.Cookie(oauthProviderCookie); err == nil && providerCookie.Value != key {
		respondWithError(w, h.log, apperr.Validation("OAuth provider mismatch"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), oauthExchangeWait)
	defer cancel()

	config := *provider.Config
	config.RedirectURL = h.redirectURL(r, key)

	token, err := config.Exchange(ctx, code)
	if err != nil {
		h.log.Warn("oauth code exchange failed", "provider", key, "error", err)
		respondWithError(w, h.log, apperr.Validation("Failed to exchange OAuth code"))
		return
	}

	info, err := fetchUserInfo(ctx, provider, token)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	http.SetCookie(w, security.DeleteCookie(r, oauthStateCookie))
	http.SetCookie(w, security.DeleteCookie(r, oauthProviderCookie))

	bearer, user, err := h.authService.OAuthLogin(r.Context(), key, info.Subject, info.Email)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	h.log.Info("oauth login", "provider", key, "user_id", user.ID)

	target := strings.TrimRight(h.frontendURL, "/") + "/oauth/callback#" + url.Values{"token": {bearer}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// fetchUserInfo reads id and email from the provider's profile endpoint.
// Google and Facebook both answer with {"id", "email", "name"}.
func fetchUserInfo(ctx context.Context, provider OAuthProvider, token *oauth2.Token) (oauthUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		return oauthUserInfo{}, apperr.Upstream(fmt.Sprintf("Failed to fetch %s user info", provider.Label), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthUserInfo{}, apperr.Upstream(
			fmt.Sprintf("Failed to fetch %s user info", provider.Label),
			fmt.Errorf("unexpected status %d", resp.StatusCode),
		)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return oauthUserInfo{}, apperr.Upstream(fmt.Sprintf("Failed to parse %s user info", provider.Label), err)
	}
	if payload.Email == "" {
		return oauthUserInfo{}, apperr.Validation(fmt.Sprintf("%s did not share an email address", provider.Label))
	}

	return oauthUserInfo{Subject: payload.ID, Email: payload.Email}, nil
}

func (h *OAuthHandler) redirectURL(r *http.Request, key string) string {
	baseURL := strings.TrimSpace(h.baseURL)
	if baseURL == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return fmt.Sprintf("%s%s/auth/oauth/%s/callback", strings.TrimRight(baseURL, "/"), APIPrefix, key)
}
