package httpapi

import (
	"net/http"

	"renderapi/internal/http/handlers"
	"renderapi/internal/infra"
	"renderapi/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions carries the pieces the router mounts besides the handlers.
type RouterOptions struct {
	AllowedOrigin  string
	Logger         infra.Logger
	MetricsHandler http.Handler
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		middleware.Recover(opts.Logger),
		middleware.CORS(opts.AllowedOrigin),
	)

	r.Get("/", app.Root)
	r.Get("/v1/healthz", app.Health)
	r.Post("/generate-render", app.GenerateRender)

	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	return r
}
