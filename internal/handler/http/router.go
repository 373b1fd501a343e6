package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/victorverma3/ktpdatabase/pkg/health"
	"github.com/victorverma3/ktpdatabase/pkg/middleware"

	"github.com/victorverma3/ktpdatabase/internal/service"
)

// RouterConfig carries the router's cross-cutting settings.
type RouterConfig struct {
	CORS middleware.CORSConfig

	// StaticCacheMaxAge is the Cache-Control max-age, in seconds, for the
	// calendar and professional routes.
	StaticCacheMaxAge int
}

// NewRouter creates a chi router with all portal routes registered. validate
// is the session token validator guarding the authenticated routes.
func NewRouter(
	reviewService *service.ReviewService,
	contentService *service.ContentService,
	validate middleware.TokenValidator,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("review-portal"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	reviewHandler := NewReviewHandler(reviewService, logger)
	contentHandler := NewContentHandler(contentService, logger)
	sessionHandler := NewSessionHandler(logger)

	r.Route("/academics", func(r chi.Router) {
		r.Get("/subjects", reviewHandler.ListSubjects)

		r.Route("/courses", func(r chi.Router) {
			r.With(ContentTypeJSON).Post("/professors", reviewHandler.ListProfessors)
			r.With(ContentTypeJSON, middleware.Auth(validate)).Post("/add-review", reviewHandler.AddReview)

			r.Get("/{courseID}/reviews", reviewHandler.ListCourseReviews)
			r.Get("/{courseID}/stats", reviewHandler.CourseStats)
		})
	})

	staticCache := middleware.CacheControl(cfg.StaticCacheMaxAge)
	r.With(staticCache).Get("/calendar/events", contentHandler.ListCalendarEvents)
	r.Route("/professional", func(r chi.Router) {
		r.Use(staticCache)
		r.Get("/internships", contentHandler.ListInternships)
		r.Get("/resources", contentHandler.ListResources)
	})

	r.With(middleware.Auth(validate)).Get("/auth/session", sessionHandler.CurrentUser)

	return r
}
