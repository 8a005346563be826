package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/blogem/sign2pay-oauth/authenticator"
	"github.com/blogem/sign2pay-oauth/models"
	"github.com/blogem/sign2pay-oauth/reqctx"
	"github.com/blogem/sign2pay-oauth/repositories"
)

var (
	// ErrInvalidState indicates a missing code or a state parameter mismatch
	ErrInvalidState = errors.New("invalid state")
)

// Authorization is the outcome of starting an authorization
type Authorization struct {
	URL   string
	State string
}

// AuthService drives the Sign2Pay authorization flow for the demo server
type AuthService interface {
	BeginAuthorization(ctx context.Context, opts authenticator.AuthorizationOptions) (*Authorization, error)
	CompleteAuthorization(ctx context.Context, code, state, expectedState string) (*authenticator.Token, error)
	ValidateToken(ctx context.Context, token string) (bool, error)
	RecordProviderError(ctx context.Context, code, description string)
	FailedEvents(ctx context.Context) ([]models.AuthEvent, error)
}

type authService struct {
	provider authenticator.Provider
	events   repositories.AuthEventRepository
}

// NewAuthService creates a new auth service
func NewAuthService(provider authenticator.Provider, events repositories.AuthEventRepository) AuthService {
	return &authService{
		provider: provider,
		events:   events,
	}
}

// BeginAuthorization generates a state and returns the provider authorization URL
func (s *authService) BeginAuthorization(ctx context.Context, opts authenticator.AuthorizationOptions) (*Authorization, error) {
	state, err := generateRandomState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	authURL := s.provider.AuthCodeURL(state, opts)
	log.Printf("[%s] REDIRECT: %s", reqctx.GetRequestUID(ctx), authURL)
	s.record(ctx, models.AuthEventAuthorizeRedirect, authURL, 0)

	return &Authorization{URL: authURL, State: state}, nil
}

// CompleteAuthorization checks the callback state and exchanges the code for a token
func (s *authService) CompleteAuthorization(ctx context.Context, code, state, expectedState string) (*authenticator.Token, error) {
	if code == "" || state == "" || state != expectedState {
		return nil, ErrInvalidState
	}

	token, err := s.provider.Exchange(ctx, code, state)
	if err != nil {
		s.record(ctx, models.AuthEventTokenExchangeFailed, err.Error(), providerStatus(err))
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	s.record(ctx, models.AuthEventTokenExchanged, token.Scope, 0)
	return token, nil
}

// ValidateToken asks the provider whether a stored token is still valid.
// A 403 from the provider means the token expired or was revoked and is not
// reported as an error.
func (s *authService) ValidateToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	valid, err := s.provider.CheckAccessTokenValid(ctx, token)
	if err != nil {
		s.record(ctx, models.AuthEventTokenInvalid, err.Error(), providerStatus(err))
		if authenticator.IsProviderStatus(err, http.StatusForbidden) {
			return false, nil
		}
		return false, err
	}

	if valid {
		s.record(ctx, models.AuthEventTokenValid, "", 0)
	} else {
		s.record(ctx, models.AuthEventTokenInvalid, "status not ok", 0)
	}
	return valid, nil
}

// RecordProviderError stores an error Sign2Pay reported through the redirect
func (s *authService) RecordProviderError(ctx context.Context, code, description string) {
	detail := code
	if description != "" {
		detail += ": " + description
	}
	s.record(ctx, models.AuthEventProviderError, detail, 0)
}

// FailedEvents returns the failure events recorded for the current request
func (s *authService) FailedEvents(ctx context.Context) ([]models.AuthEvent, error) {
	events, err := s.events.GetByRequestUID(reqctx.GetRequestUID(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to load auth events: %w", err)
	}

	var failed []models.AuthEvent
	for _, event := range events {
		if event.IsFailure() {
			failed = append(failed, event)
		}
	}
	return failed, nil
}

// record stores an audit event. Failures are logged, never returned.
func (s *authService) record(ctx context.Context, kind models.AuthEventKind, detail string, statusCode int) {
	event := &models.AuthEvent{
		RequestUID: reqctx.GetRequestUID(ctx),
		Kind:       kind,
		Detail:     detail,
		StatusCode: statusCode,
		IPAddress:  reqctx.GetClientIP(ctx),
		UserAgent:  reqctx.GetUserAgent(ctx),
	}
	if err := s.events.Create(event); err != nil {
		log.Printf("[%s] Failed to record auth event %s: %v", event.RequestUID, kind, err)
	}
}

// providerStatus returns the HTTP status of a ProviderError, or 0
func providerStatus(err error) int {
	var providerErr *authenticator.ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode
	}
	return 0
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
