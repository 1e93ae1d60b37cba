package usps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kestrelworks/uspsbatch/internal/credstore"
	"github.com/kestrelworks/uspsbatch/internal/telemetry"
)

// TokenProvider exchanges stored client credentials for an OAuth bearer token
// and persists the result. Refresh is the only path by which the stored token
// changes; nothing refreshes automatically on expiry.
type TokenProvider struct {
	store      credstore.Store
	httpClient *http.Client
	tokenURL   string
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// NewTokenProvider creates a token provider backed by the given secret store.
func NewTokenProvider(cfg Config, store credstore.Store) *TokenProvider {
	return &TokenProvider{
		store:      store,
		httpClient: cfg.httpClient(),
		tokenURL:   cfg.tokenURL(),
		logger:     cfg.logger(),
		metrics:    cfg.Metrics,
	}
}

// Refresh performs the OAuth2 client-credentials exchange, stores the new
// token, and returns it. It never retries; every failure class maps to a
// distinct error so the operator sees exactly what went wrong.
func (p *TokenProvider) Refresh(ctx context.Context) (string, error) {
	clientID, err := credstore.ClientID(ctx, p.store)
	if err != nil && !errors.Is(err, credstore.ErrNotFound) {
		return "", fmt.Errorf("reading client ID: %w", err)
	}
	clientSecret, err := credstore.ClientSecret(ctx, p.store)
	if err != nil && !errors.Is(err, credstore.ErrNotFound) {
		return "", fmt.Errorf("reading client secret: %w", err)
	}
	if clientID == "" || clientSecret == "" {
		return "", ErrMissingCredentials
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"scope":         {tokenScope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TokenRequestError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", ErrTokenResponseMalformed
	}

	token, _ := payload["access_token"].(string)
	if token == "" {
		return "", &TokenFieldError{Body: string(body)}
	}

	if err := credstore.SetToken(ctx, p.store, token); err != nil {
		return "", fmt.Errorf("persisting token: %w", err)
	}

	p.metrics.TokenRefreshed()
	p.logger.Info("OAuth token refreshed", "token_prefix", tokenPrefix(token))
	return token, nil
}

// tokenPrefix truncates a token for logging; the full value is a secret.
func tokenPrefix(token string) string {
	if len(token) <= 12 {
		return token
	}
	return token[:12] + "..."
}
