package controllers

import (
	"fmt"
	"net/http"
)

// HomeController serves the token protected landing page
type HomeController struct{}

// NewHomeController creates a new home controller
func NewHomeController() *HomeController {
	return &HomeController{}
}

// Index handles GET /. It is only reachable with a valid token in the session.
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "You have a valid token!")
}

// Health handles GET /health
func (c *HomeController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status": "healthy", "service": "sign2pay-demo"}`)
}
