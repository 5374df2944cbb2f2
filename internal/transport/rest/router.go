package rest

import (
	"net/http"

	"github.com/heartmarshall/lingua-tutor-backend/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Chat     *ChatHandler
	Courses  *CourseHandler
	Progress *ProgressHandler
	WordBank *WordBankHandler
	Catalog  *CatalogHandler

	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

// Limits are per-route-group rate limiters. A nil limiter disables limiting.
type Limits struct {
	Chat middleware.Middleware
	Auth middleware.Middleware
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(h Handlers, limits Limits) *http.ServeMux {
	mux := http.NewServeMux()

	chat := middleware.Chain(limits.Chat)
	authLimit := middleware.Chain(limits.Auth)
	learner := func(f http.HandlerFunc) http.Handler { return middleware.RequireLearner(f) }

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.Handle("POST /api/llm/chat", chat(http.HandlerFunc(h.Chat.Chat)))
	mux.Handle("POST /api/llm/voice", chat(http.HandlerFunc(h.Chat.Voice)))

	mux.Handle("POST /api/auth/signup", authLimit(http.HandlerFunc(h.Auth.Signup)))
	mux.Handle("POST /api/auth/login", authLimit(http.HandlerFunc(h.Auth.Login)))
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/auth/session", h.Auth.Session)

	mux.Handle("GET /api/courses", learner(h.Courses.List))
	mux.Handle("POST /api/courses", learner(h.Courses.Enroll))
	mux.Handle("GET /api/progress/{languageId}", learner(h.Progress.List))
	mux.Handle("POST /api/progress/{languageId}", learner(h.Progress.Update))
	mux.Handle("GET /api/wordbank/{languageId}", learner(h.WordBank.List))

	mux.HandleFunc("GET /api/languages", h.Catalog.Languages)
	mux.HandleFunc("GET /api/languages/{languageId}/lessons", h.Catalog.Lessons)

	if h.Metrics != nil {
		path := h.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, h.Metrics)
	}

	return mux
}
