package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/alexflint/go-arg"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/sign2pay-oauth/authenticator"
	"github.com/blogem/sign2pay-oauth/config"
	"github.com/blogem/sign2pay-oauth/controllers"
	"github.com/blogem/sign2pay-oauth/database"
	authmiddleware "github.com/blogem/sign2pay-oauth/middleware"
	"github.com/blogem/sign2pay-oauth/repositories"
	"github.com/blogem/sign2pay-oauth/services"
)

type args struct {
	EnvFile  string `arg:"--env-file" default:".env" help:"dotenv file with SIGN2PAY_* settings"`
	Port     string `arg:"--port" help:"listen port, overrides PORT"`
	Database string `arg:"--db" help:"sqlite audit database path, overrides DATABASE_PATH"`
}

func (args) Description() string {
	return "Sign2Pay OAuth2 demo server"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load(a.EnvFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if a.Port != "" {
		cfg.Port = a.Port
	}
	if a.Database != "" {
		cfg.DatabasePath = a.Database
	}

	// Initialize database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	r, err := setupRouter(cfg, db)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	log.Printf("Sign2Pay demo starting on port %s", cfg.Port)
	log.Printf("Visit: http://localhost:%s", cfg.Port)

	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// setupRouter wires the provider, services and controllers and configures all routes
func setupRouter(cfg *config.Config, db *sql.DB) (*chi.Mux, error) {
	provider, err := authenticator.NewSign2PayProvider(cfg.Provider())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Sign2Pay provider: %w", err)
	}

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, provider)
	ctrl := controllers.NewControllers(srvs)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(authmiddleware.RequestMetadata)

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "sign2pay_session",
		Secure:         cfg.UseHTTPS,
		Gclifetime:     cfg.SessionLifetime,
		Maxlifetime:    cfg.SessionLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)
	r.Use(authmiddleware.ProviderErrorHandler(srvs.Auth))

	// PUBLIC ROUTES
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/health", ctrl.Home.Health)

	// PROTECTED ROUTES (valid Sign2Pay token required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireToken(srvs.Auth))
		r.Get("/", ctrl.Home.Index)
	})

	return r, nil
}
