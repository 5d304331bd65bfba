package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/config"
	"plan2read/internal/http/handler"
	mw "plan2read/internal/http/middleware"
)

func NewRouter(cfg config.Config, d *api.Dispatcher, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.ActionHandler{Dispatcher: d}
	r.Route("/api", func(r chi.Router) {
		r.Post("/", ah.Post)
		r.Get("/", ah.Get)
	})

	return r
}
