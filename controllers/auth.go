package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"gitea.com/go-chi/session"

	"github.com/blogem/sign2pay-oauth/authenticator"
	"github.com/blogem/sign2pay-oauth/reqctx"
	"github.com/blogem/sign2pay-oauth/services"
)

type AuthController struct {
	auth services.AuthService
}

func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login redirects the user to Sign2Pay. Optional ref_id and amount query
// parameters are forwarded to the authorization request.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	opts := authenticator.AuthorizationOptions{
		RefID: r.URL.Query().Get("ref_id"),
	}
	if raw := r.URL.Query().Get("amount"); raw != "" {
		amount, err := strconv.Atoi(raw)
		if err != nil || amount < 0 {
			http.Error(w, "Invalid amount", http.StatusBadRequest)
			return
		}
		opts.Amount = &amount
	}

	authorization, err := ac.auth.BeginAuthorization(r.Context(), opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	if err := sess.Set(SessionStateKey, authorization.State); err != nil {
		http.Error(w, "Failed to store state: "+err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, authorization.URL, http.StatusFound)
}

// Callback handles the redirect back from Sign2Pay
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	expectedState, _ := sess.Get(SessionStateKey).(string)
	query := r.URL.Query()

	// Exchange the code for a token
	token, err := ac.auth.CompleteAuthorization(r.Context(), query.Get("code"), query.Get("state"), expectedState)
	if err != nil {
		sess.Delete(SessionStateKey)
		if errors.Is(err, services.ErrInvalidState) {
			http.Error(w, "Invalid state", http.StatusInternalServerError)
			return
		}
		requestUID := reqctx.GetRequestUID(r.Context())
		log.Printf("[%s] Token exchange failed: %v", requestUID, err)
		if failed, trailErr := ac.auth.FailedEvents(r.Context()); trailErr == nil {
			for _, event := range failed {
				log.Printf("[%s] %s (%d): %s", requestUID, event.Kind, event.StatusCode, event.Detail)
			}
		}
		http.Error(w, "Failed to exchange authorization code for a token: "+err.Error(), http.StatusUnauthorized)
		return
	}

	if err := sess.Set(SessionAccessTokenKey, token.AccessToken); err != nil {
		http.Error(w, "Failed to store token: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sess.Delete(SessionStateKey)

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout forgets the stored access token
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(SessionAccessTokenKey)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
