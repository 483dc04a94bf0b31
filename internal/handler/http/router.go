package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/optimacrm/crm-backend-go/internal/config"
	"github.com/optimacrm/crm-backend-go/internal/domain/user"
	"github.com/optimacrm/crm-backend-go/internal/handler/http/middleware"
	"github.com/optimacrm/crm-backend-go/internal/pkg/jwt"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      AuthHandler
	User      UserHandler
	Approval  ApprovalHandler
	Dashboard DashboardHandler
	Lead      LeadHandler
	Contact   ContactHandler
	Account   AccountHandler
	Deal      DealHandler
	Project   ProjectHandler
	Task      TaskHandler
	Ticket    TicketHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, userRepository user.UserRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "optimacrm"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	// PathGuard must see the raw path, so it runs before CleanPath.
	r.Use(middleware.PathGuard)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth(), userRepository))
				r.Get("/me", h.Auth.Me)
				r.Get("/page-access", h.Auth.PageAccess)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth(), userRepository))

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePage("/dashboard"))
				r.Get("/", h.Dashboard.Summary)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Use(middleware.RequirePage("/leads"))
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Get("/export", h.Lead.Export)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
				r.Post("/{id}/convert", h.Lead.Convert)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Use(middleware.RequirePage("/contacts"))
				r.Get("/", h.Contact.List)
				r.Post("/", h.Contact.Create)
				r.Get("/{id}", h.Contact.Get)
				r.Put("/{id}", h.Contact.Update)
				r.Delete("/{id}", h.Contact.Delete)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Use(middleware.RequirePage("/accounts"))
				r.Get("/", h.Account.List)
				r.Post("/", h.Account.Create)
				r.Get("/{id}", h.Account.Get)
				r.Put("/{id}", h.Account.Update)
				r.Delete("/{id}", h.Account.Delete)
			})

			r.Route("/deals", func(r chi.Router) {
				r.Use(middleware.RequirePage("/deals"))
				r.Get("/", h.Deal.List)
				r.Post("/", h.Deal.Create)
				r.Get("/{id}", h.Deal.Get)
				r.Put("/{id}", h.Deal.Update)
				r.Delete("/{id}", h.Deal.Delete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Use(middleware.RequirePage("/projects"))
				r.Get("/", h.Project.List)
				r.Post("/", h.Project.Create)
				r.Get("/{id}", h.Project.Get)
				r.Put("/{id}", h.Project.Update)
				r.Delete("/{id}", h.Project.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Use(middleware.RequirePage("/tasks"))
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Delete("/{id}", h.Task.Delete)
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Use(middleware.RequirePage("/tickets"))
				r.Get("/", h.Ticket.List)
				r.Post("/", h.Ticket.Create)
				r.Get("/{id}", h.Ticket.Get)
				r.Put("/{id}", h.Ticket.Update)
				r.Delete("/{id}", h.Ticket.Delete)
			})

			// Admin only
			r.Route("/approvals", func(r chi.Router) {
				r.Use(middleware.RequirePage("/approvals"))
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Approval.ListPending)
				r.Post("/{id}/approve", h.Approval.Approve)
				r.Post("/{id}/reject", h.Approval.Reject)
			})

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePage("/users"))
				r.Use(middleware.AdminOnly)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/{id}", h.User.Get)
				r.Put("/{id}", h.User.Update)
				r.Put("/{id}/role", h.User.UpdateRole)
				r.Put("/{id}/active", h.User.SetActive)
				r.Delete("/{id}", h.User.Delete)
			})
		})
	})
	return r
}
