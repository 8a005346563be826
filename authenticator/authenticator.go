package authenticator

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Config holds the client credentials and endpoint settings for a provider
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// BaseURL overrides the provider base URL. Empty means the production URL.
	BaseURL string

	// HTTPClient is used for every outbound call. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Debug logs outbound provider requests
	Debug bool
}

// Token represents an access token issued by the provider
type Token struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	Expiry       time.Time
}

// IsExpired reports whether the token has a known expiry in the past
func (t *Token) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// ResourceOwner is the end user a token was issued for
type ResourceOwner interface {
	ID() string
	ToMap() map[string]any
}

// AuthorizationOptions carries provider specific authorization parameters.
// A field is only sent when set.
type AuthorizationOptions struct {
	RefID  string // merchant reference id
	Amount *int   // payment amount in cents
}

// AuthorizationURLBuilder builds the provider endpoint URLs and authorization parameters
type AuthorizationURLBuilder interface {
	AuthorizationURL() string
	AccessTokenURL(params ...Param) string
	ResourceOwnerDetailsURL(token string) (string, bool)
	DefaultScopes() []string
	AuthorizationParameters(base url.Values, opts AuthorizationOptions) url.Values
}

// HeaderBuilder builds the headers sent with provider requests
type HeaderBuilder interface {
	DefaultHeaders() http.Header
	AuthorizationHeaders(token string) http.Header
	RequestHeaders(token string) http.Header
}

// ErrorChecker inspects parsed provider responses for errors
type ErrorChecker interface {
	CheckResponse(resp *http.Response, payload map[string]any) error
}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	AuthorizationURLBuilder
	HeaderBuilder
	ErrorChecker

	Name() string
	AuthCodeURL(state string, opts AuthorizationOptions) string
	Exchange(ctx context.Context, code, state string) (*Token, error)
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
	CheckAccessTokenValid(ctx context.Context, token string) (bool, error)
	CreateResourceOwner(payload map[string]any, token string) (ResourceOwner, bool)
}
