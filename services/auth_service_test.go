package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/sign2pay-oauth/authenticator"
	"github.com/blogem/sign2pay-oauth/models"
	"github.com/blogem/sign2pay-oauth/reqctx"
	"github.com/blogem/sign2pay-oauth/repositories/mocks"
)

// AuthServiceTestSuite runs the auth service against a fake Sign2Pay server
type AuthServiceTestSuite struct {
	suite.Suite
	server     *httptest.Server
	handler    http.HandlerFunc
	mockEvents *mocks.MockAuthEventRepository
	service    AuthService
	ctx        context.Context
}

// SetupTest sets up the test suite before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unexpected request", http.StatusTeapot)
	}
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.handler(w, r)
	}))

	provider, err := authenticator.NewSign2PayProvider(authenticator.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/callback",
		BaseURL:      suite.server.URL,
	})
	suite.Require().NoError(err)

	suite.mockEvents = mocks.NewMockAuthEventRepository(suite.T())
	suite.service = NewAuthService(provider, suite.mockEvents)
	suite.ctx = reqctx.SetClient(reqctx.SetRequestUID(context.Background(), "req-1"), "127.0.0.1", "go-test")
}

// TearDownTest closes the fake server
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *AuthServiceTestSuite) respond(status int, body map[string]any) {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func (suite *AuthServiceTestSuite) expectEvent(kind models.AuthEventKind, statusCode int) {
	suite.mockEvents.EXPECT().Create(mock.MatchedBy(func(e *models.AuthEvent) bool {
		return e.Kind == kind && e.StatusCode == statusCode && e.RequestUID == "req-1" && e.IPAddress == "127.0.0.1"
	})).Return(nil).Once()
}

// TestBeginAuthorization tests that the authorization URL carries state and payment options
func (suite *AuthServiceTestSuite) TestBeginAuthorization() {
	suite.expectEvent(models.AuthEventAuthorizeRedirect, 0)
	amount := 1250

	auth, err := suite.service.BeginAuthorization(suite.ctx, authenticator.AuthorizationOptions{RefID: "order-7", Amount: &amount})
	suite.Require().NoError(err)
	assert.NotEmpty(suite.T(), auth.State)

	u, err := url.Parse(auth.URL)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "/oauth/authorize", u.Path)
	assert.Equal(suite.T(), auth.State, u.Query().Get("state"))
	assert.Equal(suite.T(), "order-7", u.Query().Get("ref_id"))
	assert.Equal(suite.T(), "1250", u.Query().Get("amount"))
}

// TestBeginAuthorization_UniqueState tests that every authorization gets a fresh state
func (suite *AuthServiceTestSuite) TestBeginAuthorization_UniqueState() {
	suite.mockEvents.EXPECT().Create(mock.Anything).Return(errors.New("disk full")).Twice()

	first, err := suite.service.BeginAuthorization(suite.ctx, authenticator.AuthorizationOptions{})
	suite.Require().NoError(err)
	second, err := suite.service.BeginAuthorization(suite.ctx, authenticator.AuthorizationOptions{})
	suite.Require().NoError(err)

	assert.NotEqual(suite.T(), first.State, second.State)
}

// TestCompleteAuthorization_InvalidState tests state validation before any exchange
func (suite *AuthServiceTestSuite) TestCompleteAuthorization_InvalidState() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Fail("provider must not be called")
	}

	_, err := suite.service.CompleteAuthorization(suite.ctx, "code", "state", "other")
	assert.ErrorIs(suite.T(), err, ErrInvalidState)

	_, err = suite.service.CompleteAuthorization(suite.ctx, "", "state", "state")
	assert.ErrorIs(suite.T(), err, ErrInvalidState)

	_, err = suite.service.CompleteAuthorization(suite.ctx, "code", "", "")
	assert.ErrorIs(suite.T(), err, ErrInvalidState)
}

// TestCompleteAuthorization_Success tests a successful code exchange
func (suite *AuthServiceTestSuite) TestCompleteAuthorization_Success() {
	suite.respond(http.StatusOK, map[string]any{"access_token": "tok", "token_type": "bearer", "scope": "payment"})
	suite.expectEvent(models.AuthEventTokenExchanged, 0)

	token, err := suite.service.CompleteAuthorization(suite.ctx, "code", "state", "state")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "tok", token.AccessToken)
}

// TestCompleteAuthorization_ProviderError tests that exchange errors keep the provider error
func (suite *AuthServiceTestSuite) TestCompleteAuthorization_ProviderError() {
	suite.respond(http.StatusUnauthorized, map[string]any{"error": "invalid_client"})
	suite.expectEvent(models.AuthEventTokenExchangeFailed, http.StatusUnauthorized)

	_, err := suite.service.CompleteAuthorization(suite.ctx, "code", "state", "state")
	assert.True(suite.T(), authenticator.IsProviderStatus(err, http.StatusUnauthorized))
}

// TestValidateToken tests the outcomes of a token validity check
func (suite *AuthServiceTestSuite) TestValidateToken() {
	suite.respond(http.StatusOK, map[string]any{"status": "ok"})
	suite.expectEvent(models.AuthEventTokenValid, 0)

	valid, err := suite.service.ValidateToken(suite.ctx, "tok")
	suite.Require().NoError(err)
	assert.True(suite.T(), valid)
}

// TestValidateToken_Forbidden tests that a 403 means "not valid" rather than a failure
func (suite *AuthServiceTestSuite) TestValidateToken_Forbidden() {
	suite.respond(http.StatusForbidden, map[string]any{"error": "forbidden"})
	suite.expectEvent(models.AuthEventTokenInvalid, http.StatusForbidden)

	valid, err := suite.service.ValidateToken(suite.ctx, "tok")
	suite.Require().NoError(err)
	assert.False(suite.T(), valid)
}

// TestValidateToken_ProviderFailure tests that other provider errors propagate
func (suite *AuthServiceTestSuite) TestValidateToken_ProviderFailure() {
	suite.respond(http.StatusInternalServerError, map[string]any{"error": "server_error"})
	suite.expectEvent(models.AuthEventTokenInvalid, http.StatusInternalServerError)

	valid, err := suite.service.ValidateToken(suite.ctx, "tok")
	assert.Error(suite.T(), err)
	assert.False(suite.T(), valid)
}

// TestValidateToken_Empty tests that an empty token is never sent to the provider
func (suite *AuthServiceTestSuite) TestValidateToken_Empty() {
	valid, err := suite.service.ValidateToken(suite.ctx, "")
	suite.Require().NoError(err)
	assert.False(suite.T(), valid)
}

// TestRecordProviderError tests the audit detail for redirect errors
func (suite *AuthServiceTestSuite) TestRecordProviderError() {
	suite.mockEvents.EXPECT().Create(mock.MatchedBy(func(e *models.AuthEvent) bool {
		return e.Kind == models.AuthEventProviderError && e.Detail == "access_denied: user cancelled"
	})).Return(nil).Once()

	suite.service.RecordProviderError(suite.ctx, "access_denied", "user cancelled")
}

// TestFailedEvents tests that only failures of the current request are returned
func (suite *AuthServiceTestSuite) TestFailedEvents() {
	suite.mockEvents.EXPECT().GetByRequestUID("req-1").Return([]models.AuthEvent{
		{RequestUID: "req-1", Kind: models.AuthEventAuthorizeRedirect},
		{RequestUID: "req-1", Kind: models.AuthEventTokenExchangeFailed, StatusCode: http.StatusUnauthorized, Detail: "invalid_client"},
		{RequestUID: "req-1", Kind: models.AuthEventTokenExchanged},
	}, nil).Once()

	failed, err := suite.service.FailedEvents(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(failed, 1)
	assert.Equal(suite.T(), models.AuthEventTokenExchangeFailed, failed[0].Kind)
	assert.Equal(suite.T(), "invalid_client", failed[0].Detail)
}

// TestFailedEvents_RepositoryError tests that lookup failures are returned
func (suite *AuthServiceTestSuite) TestFailedEvents_RepositoryError() {
	suite.mockEvents.EXPECT().GetByRequestUID("req-1").Return(nil, errors.New("database is locked")).Once()

	failed, err := suite.service.FailedEvents(suite.ctx)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), failed)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestGenerateRandomState(t *testing.T) {
	state, err := generateRandomState()
	require.NoError(t, err)
	assert.Len(t, state, 43)
	assert.NotContains(t, state, "+")
	assert.NotContains(t, state, "/")
}
