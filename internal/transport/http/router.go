package http

import (
	"net/http"

	"github.com/abdussamadse/todo-server/internal/application/account"
	"github.com/abdussamadse/todo-server/internal/application/session"
	todoapp "github.com/abdussamadse/todo-server/internal/application/todo"
	userapp "github.com/abdussamadse/todo-server/internal/application/user"
	"github.com/abdussamadse/todo-server/internal/config"
	"github.com/abdussamadse/todo-server/internal/domain"
	jwtinfra "github.com/abdussamadse/todo-server/internal/infrastructure/jwt"
	"github.com/abdussamadse/todo-server/internal/transport/http/handler"
	appmiddleware "github.com/abdussamadse/todo-server/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	TodoRepo    TodoRepository
	S3Store     ObjectStore
	Mailer      Mailer
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	handler.SetDevMode(cfg.IsDevelopment())

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(deps.UserRepo, deps.Mailer)
	sessionSvc := session.NewService(deps.UserRepo, deps.JWTProvider)
	userSvc := userapp.NewService(deps.UserRepo, deps.S3Store)
	todoSvc := todoapp.NewService(deps.TodoRepo)

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)
	sessionH := handler.NewSessionHandler(sessionSvc, !cfg.IsDevelopment())
	userH := handler.NewUserHandler(userSvc)
	todoH := handler.NewTodoHandler(todoSvc)

	r.Get("/", healthH.Ping)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// ── Public account lifecycle routes ──────────────────────────────
			r.With(sensitiveRL.Limit).Post("/register", accountH.Register)
			r.With(sensitiveRL.Limit).Post("/verify-email", accountH.VerifyEmail)
			r.With(sensitiveRL.Limit).Post("/resend-otp", accountH.ResendOTP)
			r.With(sensitiveRL.Limit).Post("/login", sessionH.Login)
			r.Post("/logout", sessionH.Logout)
			r.With(sensitiveRL.Limit).Post("/forgot-password", accountH.ForgotPassword)
			r.With(sensitiveRL.Limit).Post("/verify-otp", accountH.VerifyResetOTP)
			r.With(sensitiveRL.Limit).Post("/reset-password", accountH.ResetPassword)

			// ── Authenticated routes ─────────────────────────────────────────
			r.Group(func(r chi.Router) {
				r.Use(authMw)

				r.Post("/change-password", accountH.ChangePassword)
				r.Get("/profile", userH.GetProfile)
				r.Put("/profile", userH.UpdateProfile)
				r.Put("/avatar", userH.UploadAvatar)

				// Admin-only routes
				r.Group(func(r chi.Router) {
					r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

					r.Get("/", userH.List)
					r.Get("/{userId}", userH.Get)
					r.Delete("/{userId}", userH.Delete)
				})
			})
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(authMw)

			r.Post("/", todoH.Create)
			r.Get("/", todoH.List)
			r.Delete("/", todoH.DeleteAll)
			r.Get("/{id}", todoH.Get)
			r.Put("/{id}", todoH.Update)
			r.Delete("/{id}", todoH.Delete)
		})
	})

	return r
}
