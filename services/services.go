package services

import (
	"github.com/blogem/sign2pay-oauth/authenticator"
	"github.com/blogem/sign2pay-oauth/repositories"
)

// Services holds all service instances
type Services struct {
	Auth AuthService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, provider authenticator.Provider) *Services {
	return &Services{
		Auth: NewAuthService(provider, repos.AuthEvents),
	}
}
