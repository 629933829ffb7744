package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	accountapp "github.com/naholgroupsclkln/nexora-backend/internal/application/account"
	otpapp "github.com/naholgroupsclkln/nexora-backend/internal/application/otp"
	"github.com/naholgroupsclkln/nexora-backend/internal/config"
	"github.com/naholgroupsclkln/nexora-backend/internal/transport/http/handler"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	otpSvc := otpapp.NewService(otpapp.ServiceDeps{
		CodeRepo: deps.CodeRepo,
		Mailer:   deps.Mailer,
		TTL:      cfg.CodeTTL,
	})
	accountSvc := accountapp.NewService(accountapp.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		OTPService:  otpSvc,
	})

	accountH := handler.NewAccountHandler(accountSvc)
	codeH := handler.NewCodeHandler(otpSvc)

	r.Get("/", handler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", accountH.Signup)
		r.Post("/signin", accountH.Signin)
		r.Post("/send-code", codeH.Send)
		r.Post("/verify-code", codeH.Verify)
	})

	return r
}
