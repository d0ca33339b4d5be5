package httpapi

import (
	"net/http"
	"time"

	"alphinex-backend-go/internal/config"
	"alphinex-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Mailer     services.Mailer
	Logger     *zap.Logger
	MetricsHub *services.MetricsHub
}

// NewServer wires the handlers. mailer may be nil when no provider key is
// configured; contact submissions are then logged instead of sent.
func NewServer(db *sqlx.DB, cfg config.Config, logger *zap.Logger, mailer services.Mailer, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.SessionSecret),
		Issuer:     cfg.SessionIssuer,
		SessionTTL: time.Duration(cfg.SessionTTLSeconds) * time.Second,
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if hub == nil {
		hub = services.NewMetricsHub()
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Mailer:     mailer,
		Logger:     logger,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.Logger))
	r.Use(middleware.Recoverer)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(WithSession(s.Tokens))

	r.Get("/healthz", s.Healthz)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)
		api.With(s.RequireSession).Get("/auth/session", s.Session)
		api.With(s.RequireSession).Put("/auth/password", s.ChangePassword)

		api.Route("/team", func(team chi.Router) {
			team.Get("/", s.ListTeam)
			team.Get("/{id}", s.GetTeamMember)
			team.With(s.RequireSession).Post("/", s.CreateTeamMember)
			team.With(s.RequireSession).Put("/{id}", s.UpdateTeamMember)
			team.With(s.RequireSession).Delete("/{id}", s.DeleteTeamMember)
		})

		api.Route("/testimonials", func(testimonials chi.Router) {
			testimonials.Get("/", s.ListTestimonials)
			testimonials.Get("/{id}", s.GetTestimonial)
			testimonials.With(s.RequireSession).Post("/", s.CreateTestimonial)
			testimonials.With(s.RequireSession).Put("/{id}", s.UpdateTestimonial)
			testimonials.With(s.RequireSession).Delete("/{id}", s.DeleteTestimonial)
		})

		api.Route("/jobs", func(jobs chi.Router) {
			jobs.Get("/", s.ListJobs)
			jobs.Get("/{id}", s.GetJob)
			jobs.With(s.RequireSession).Post("/", s.CreateJob)
			jobs.With(s.RequireSession).Put("/{id}", s.UpdateJob)
			jobs.With(s.RequireSession).Delete("/{id}", s.DeleteJob)
		})

		api.Route("/applications", func(applications chi.Router) {
			applications.Post("/", s.SubmitApplication)
			applications.Group(func(admin chi.Router) {
				admin.Use(s.RequireSession)
				admin.Get("/", s.ListApplications)
				admin.Get("/{id}", s.GetApplication)
				admin.Put("/{id}", s.UpdateApplication)
				admin.Delete("/{id}", s.DeleteApplication)
			})
		})

		api.Route("/blogs", func(blogs chi.Router) {
			blogs.Get("/", s.ListBlogs)
			blogs.Get("/{id}", s.GetBlog)
			blogs.With(s.RequireSession).Post("/", s.CreateBlog)
			blogs.With(s.RequireSession).Put("/{id}", s.UpdateBlog)
			blogs.With(s.RequireSession).Delete("/{id}", s.DeleteBlog)
		})

		api.Route("/projects", func(projects chi.Router) {
			projects.Get("/", s.ListProjects)
			projects.Get("/{id}", s.GetProject)
			projects.With(s.RequireSession).Post("/", s.CreateProject)
			projects.With(s.RequireSession).Put("/{id}", s.UpdateProject)
			projects.With(s.RequireSession).Delete("/{id}", s.DeleteProject)
		})

		api.Route("/contact-emails", func(emails chi.Router) {
			emails.Get("/", s.ListContactEmails)
			emails.Group(func(admin chi.Router) {
				admin.Use(s.RequireSession)
				admin.Get("/{id}", s.GetContactEmail)
				admin.Post("/", s.CreateContactEmail)
				admin.Put("/{id}", s.UpdateContactEmail)
				admin.Delete("/{id}", s.DeleteContactEmail)
			})
		})

		api.Post("/upload", s.Upload)
		api.Get("/media/{assetId}", s.MediaContent)
		api.With(s.RequireSession).Delete("/media/{assetId}", s.DeleteMedia)

		api.Post("/contact", s.Contact)
		api.With(s.RequireSession).Get("/test-email", s.TestEmail)

		api.Post("/visits", s.TrackVisit)
		api.Get("/visits/count", s.VisitCount)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(s.RequireSession)
			admin.Get("/stats", s.AdminStats)
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
