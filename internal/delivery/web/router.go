package web

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Routes builds the HTTP router. corsOrigins are the pages allowed to fetch the widget;
// credentials lets them carry the session cookie.
func (h *Handler) Routes(corsOrigins []string, credentials bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, h.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(h.corsOptions(corsOrigins, credentials)))

	r.Get("/", h.page)
	r.Get("/widget", h.widget)
	r.Post("/next", h.next)
	r.Post("/reset", h.reset)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return r
}

// corsOptions never combines credentials with a wildcard origin.
func (h *Handler) corsOptions(origins []string, credentials bool) cors.Options {
	if credentials && slices.Contains(origins, "*") {
		h.logger.Warn("cors credentials need explicit origins, disabling them",
			zap.Strings("origins", origins),
		)
		credentials = false
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: credentials,
		MaxAge:           300,
	}
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
