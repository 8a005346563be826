package middleware

import (
	"log"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/blogem/sign2pay-oauth/controllers"
	"github.com/blogem/sign2pay-oauth/reqctx"
	"github.com/blogem/sign2pay-oauth/services"
)

// ProviderErrorHandler stops requests that carry an error reported by
// Sign2Pay in the query string, typically on the authorization redirect
func ProviderErrorHandler(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			code := query.Get("error")
			if code == "" {
				next.ServeHTTP(w, r)
				return
			}

			description := query.Get("error_description")
			auth.RecordProviderError(r.Context(), code, description)
			if description == "" {
				description = code
			}
			http.Error(w, "An unexpected error occurred on Sign2Pay: "+description, http.StatusBadGateway)
		})
	}
}

// RequireToken ensures the session holds an access token Sign2Pay still accepts.
// Otherwise the token is dropped and the user is sent to /login.
func RequireToken(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.GetSession(r)
			token, _ := sess.Get(controllers.SessionAccessTokenKey).(string)

			if token != "" {
				valid, err := auth.ValidateToken(r.Context(), token)
				if err != nil {
					log.Printf("[%s] Could not verify existing access token: %v", reqctx.GetRequestUID(r.Context()), err)
				}
				if valid {
					next.ServeHTTP(w, r)
					return
				}
				// the token probably expired, so authorize again
				sess.Delete(controllers.SessionAccessTokenKey)
			}

			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}
