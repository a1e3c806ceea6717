package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/m-zajac/gitinsight/internal/api/http/limiter"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/sirupsen/logrus"
)

// Service handles résumé uploads and returns aggregated insights.
//
//go:generate mockgen -destination mock/service.go -package mock github.com/m-zajac/gitinsight/internal/api/http Service
type Service interface {
	Upload(ctx context.Context, doc app.Document) (*app.Session, error)
	Session(ctx context.Context, id string) (*app.Session, error)
	Refresh(ctx context.Context, id string) (*app.Session, error)
	Insights(ctx context.Context, id string, f app.RepoFilter) (*app.Insights, error)
}

// MuxConfig configures router.
type MuxConfig struct {
	// Timeout of a single request.
	Timeout time.Duration
	// MaxUploadSize - max size of uploaded document in bytes.
	MaxUploadSize int64
	// UploadRate - uploads per second allowed for a single client ip.
	UploadRate float64
	// UploadBurst - number of uploads allowed at once for a single client ip.
	UploadBurst int
}

// NewMux creates router for app's http server.
func NewMux(service Service, conf MuxConfig, l logrus.FieldLogger) *chi.Mux {
	sessionID := func(r *http.Request) string {
		return chi.URLParam(r, "id")
	}
	uploadLimiter := limiter.NewIPLimiter(conf.UploadRate, conf.UploadBurst, 10*time.Minute)

	m := chi.NewRouter()
	m.Use(chimiddleware.RealIP)
	m.Use(NewLoggingMiddleware(l))
	m.Use(chimiddleware.Recoverer)

	m.Get("/healthz", NewHealthHandler())

	m.Route("/api", func(r chi.Router) {
		r.Use(NewTimeoutMiddleware(conf.Timeout))

		r.With(uploadLimiter.Middleware).Post("/resumes", NewUploadHandler(service, conf.MaxUploadSize, l))
		r.Get("/sessions/{id}", NewSessionHandler(sessionID, service, l))
		r.Post("/sessions/{id}/refresh", NewRefreshHandler(sessionID, service, l))
		r.Get("/sessions/{id}/insights", NewInsightsHandler(sessionID, service, l))
	})

	return m
}
