package authenticator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

// Sign2PayBaseURL is the production Sign2Pay base URL
const Sign2PayBaseURL = "https://app.sign2pay.com"

// ScopePayment is the only scope Sign2Pay accepts
const ScopePayment = "payment"

// Param is a single query parameter. Slices of Param keep their order when encoded.
type Param struct {
	Key   string
	Value any
}

// Sign2PayProvider customizes the golang.org/x/oauth2 authorization code
// flow for Sign2Pay endpoints, headers and error payloads
type Sign2PayProvider struct {
	config     Config
	baseURL    string
	oauth      oauth2.Config
	httpClient *http.Client
}

var _ Provider = (*Sign2PayProvider)(nil)

// NewSign2PayProvider creates a new Sign2Pay provider with the given configuration
func NewSign2PayProvider(cfg Config) (*Sign2PayProvider, error) {
	// Validate required configuration
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client ID is required", ErrInvalidConfig)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client secret is required", ErrInvalidConfig)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = Sign2PayBaseURL
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, cfg.BaseURL)
	}

	p := &Sign2PayProvider{
		config:  cfg,
		baseURL: baseURL,
	}

	p.oauth = oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.AuthorizationURL(),
			TokenURL:  p.AccessTokenURL(),
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		Scopes: p.DefaultScopes(),
	}
	p.httpClient = newHTTPClient(cfg.HTTPClient, &headerTransport{
		headers:    p.DefaultHeaders(),
		debug:      cfg.Debug,
		tokenURL:   p.AccessTokenURL(),
		clientAuth: p.AuthorizationHeaders(""),
	})

	return p, nil
}

// Name returns the provider name
func (p *Sign2PayProvider) Name() string {
	return "sign2pay"
}

// AuthorizationURL returns the URL users are redirected to for authorization
func (p *Sign2PayProvider) AuthorizationURL() string {
	return p.baseURL + "/oauth/authorize"
}

// AccessTokenURL returns the token endpoint with params appended as a query string
func (p *Sign2PayProvider) AccessTokenURL(params ...Param) string {
	tokenURL := p.baseURL + "/oauth/token"
	if len(params) == 0 {
		return tokenURL
	}
	return tokenURL + "?" + encodeParams(params)
}

// ResourceOwnerDetailsURL always reports false: Sign2Pay has no profile endpoint
func (p *Sign2PayProvider) ResourceOwnerDetailsURL(token string) (string, bool) {
	return "", false
}

// DefaultScopes returns the scopes requested when none are given
func (p *Sign2PayProvider) DefaultScopes() []string {
	return []string{ScopePayment}
}

// AuthorizationParameters merges ref_id and amount into a copy of base
func (p *Sign2PayProvider) AuthorizationParameters(base url.Values, opts AuthorizationOptions) url.Values {
	params := make(url.Values, len(base)+2)
	for key, values := range base {
		params[key] = append([]string(nil), values...)
	}

	if opts.RefID != "" {
		params.Set("ref_id", opts.RefID)
	}
	if opts.Amount != nil {
		params.Set("amount", strconv.Itoa(*opts.Amount))
	}

	return params
}

// AuthCodeURL returns the authorization URL for the given state
func (p *Sign2PayProvider) AuthCodeURL(state string, opts AuthorizationOptions) string {
	authURL := p.oauth.AuthCodeURL(state)

	u, err := url.Parse(authURL)
	if err != nil {
		return authURL
	}
	u.RawQuery = p.AuthorizationParameters(u.Query(), opts).Encode()
	return u.String()
}

// DefaultHeaders returns the headers Sign2Pay requires on every request
func (p *Sign2PayProvider) DefaultHeaders() http.Header {
	return http.Header{
		"Accept":          {"*/*"},
		"Accept-Encoding": {"gzip, deflate"},
	}
}

// AuthorizationHeaders returns Bearer auth for a token, or Basic client auth without one
func (p *Sign2PayProvider) AuthorizationHeaders(token string) http.Header {
	if token == "" {
		credentials := p.config.ClientID + ":" + p.config.ClientSecret
		return http.Header{
			"Authorization": {"Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))},
		}
	}
	return http.Header{
		"Authorization": {"Bearer " + token},
	}
}

// RequestHeaders returns the default headers plus the authorization header
func (p *Sign2PayProvider) RequestHeaders(token string) http.Header {
	headers := p.DefaultHeaders()
	for key, values := range p.AuthorizationHeaders(token) {
		headers[key] = values
	}
	return headers
}

// CheckResponse returns a ProviderError when the payload carries an error field
func (p *Sign2PayProvider) CheckResponse(resp *http.Response, payload map[string]any) error {
	if hasError(payload) {
		return NewProviderError(resp, payload)
	}
	return nil
}

// CreateResourceOwner always reports false: Sign2Pay has no profile endpoint
func (p *Sign2PayProvider) CreateResourceOwner(payload map[string]any, token string) (ResourceOwner, bool) {
	return nil, false
}

// Exchange exchanges an authorization code for tokens
func (p *Sign2PayProvider) Exchange(ctx context.Context, code, state string) (*Token, error) {
	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("response_type", "code"),
	}
	if state != "" {
		opts = append(opts, oauth2.SetAuthURLParam("state", state))
	}

	oauth2Token, err := p.oauth.Exchange(p.engineContext(ctx), code, opts...)
	if err != nil {
		return nil, p.translateError(err)
	}

	return toToken(oauth2Token), nil
}

// Refresh exchanges a refresh token for a new access token
func (p *Sign2PayProvider) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, errors.New("refresh token is required")
	}

	source := p.oauth.TokenSource(p.engineContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	oauth2Token, err := source.Token()
	if err != nil {
		return nil, p.translateError(err)
	}

	return toToken(oauth2Token), nil
}

// CheckAccessTokenValid asks Sign2Pay whether token is still valid.
// A revoked or expired token usually comes back as a ProviderError with status 403.
func (p *Sign2PayProvider) CheckAccessTokenValid(ctx context.Context, token string) (bool, error) {
	checkURL := p.AccessTokenURL(
		Param{Key: "client_id", Value: p.config.ClientID},
		Param{Key: "scope", Value: ScopePayment},
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range p.RequestHeaders(token) {
		req.Header[key] = values
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check access token: %w", err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("%w: status code %d: %v", ErrInvalidResponse, resp.StatusCode, err)
	}

	if err := p.CheckResponse(resp, payload); err != nil {
		return false, err
	}

	status, _ := payload["status"].(string)
	return status == "ok", nil
}

// engineContext hands the provider HTTP client to x/oauth2
func (p *Sign2PayProvider) engineContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// translateError turns token endpoint error bodies into ProviderErrors
func (p *Sign2PayProvider) translateError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return fmt.Errorf("token request failed: %w", err)
	}

	var payload map[string]any
	if jsonErr := json.Unmarshal(retrieveErr.Body, &payload); jsonErr != nil {
		payload = map[string]any{}
		if retrieveErr.ErrorCode != "" {
			payload["error"] = retrieveErr.ErrorCode
			payload["error_description"] = retrieveErr.ErrorDescription
		}
	}

	if providerErr := p.CheckResponse(retrieveErr.Response, payload); providerErr != nil {
		return providerErr
	}
	return fmt.Errorf("token request failed: %w", err)
}

// toToken converts an oauth2.Token to our Token type
func toToken(t *oauth2.Token) *Token {
	token := &Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
	if scope, ok := t.Extra("scope").(string); ok {
		token.Scope = scope
	}
	return token
}

// encodeParams encodes params in order using standard query escaping
func encodeParams(params []Param) string {
	var b strings.Builder
	for i, param := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		if param.Value != nil {
			b.WriteString(url.QueryEscape(fmt.Sprint(param.Value)))
		}
	}
	return b.String()
}
