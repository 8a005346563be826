package controllers

import (
	"github.com/blogem/sign2pay-oauth/services"
)

// Session keys shared by controllers and middleware
const (
	SessionStateKey       = "oauth2state"
	SessionAccessTokenKey = "access_token"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth *AuthController
	Home *HomeController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth: NewAuthController(services.Auth),
		Home: NewHomeController(),
	}
}
