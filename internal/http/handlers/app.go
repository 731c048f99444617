package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"renderapi/internal/domain"
	"renderapi/internal/infra"
	"renderapi/internal/render"
)

// Renderer produces a render for a single request.
type Renderer interface {
	Generate(ctx context.Context, req render.Request) (*domain.RenderResult, error)
}

type App struct {
	Renderer Renderer
	Logger   infra.Logger
}

func NewApp(renderer Renderer, logger *infra.Logger) *App {
	return &App{Renderer: renderer, Logger: infra.LoggerOrNop(logger)}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) detail(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"detail": msg})
}
