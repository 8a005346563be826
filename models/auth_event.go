package models

import "time"

// AuthEventKind identifies a step of the authorization flow
type AuthEventKind string

const (
	AuthEventAuthorizeRedirect   AuthEventKind = "authorize_redirect"
	AuthEventTokenExchanged      AuthEventKind = "token_exchanged"
	AuthEventTokenExchangeFailed AuthEventKind = "token_exchange_failed"
	AuthEventTokenValid          AuthEventKind = "token_valid"
	AuthEventTokenInvalid        AuthEventKind = "token_invalid"
	AuthEventProviderError       AuthEventKind = "provider_error"
)

// AuthEvent is a single entry of the authorization audit trail
type AuthEvent struct {
	ID         int64
	Timestamp  time.Time
	RequestUID string
	Kind       AuthEventKind
	Detail     string
	StatusCode int
	IPAddress  string
	UserAgent  string
}

// IsFailure reports whether the event records a failed step
func (e *AuthEvent) IsFailure() bool {
	switch e.Kind {
	case AuthEventTokenExchangeFailed, AuthEventTokenInvalid, AuthEventProviderError:
		return true
	}
	return false
}
